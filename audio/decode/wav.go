package decode

import (
	"io"
	"math"

	"github.com/cwbudde/algo-pitch/audio"
	"github.com/cwbudde/algo-pitch/dsp/core"
	"github.com/go-audio/wav"
)

const wavFormatIEEEFloat = 3

// DecodeWAV decodes a RIFF/WAVE stream.
func DecodeWAV(r io.ReadSeeker) (audio.Buffer, error) {
	dec := wav.NewDecoder(r)

	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return audio.Buffer{}, invalidStream("wav", err)
	}
	if dec.NumChans == 0 || dec.SampleRate == 0 || dec.BitDepth == 0 {
		return audio.Buffer{}, core.InvalidParameterf("decode: wav header has %d channels at %d Hz, %d bit",
			dec.NumChans, dec.SampleRate, dec.BitDepth)
	}

	samples := make([]float64, len(pcm.Data))
	bitDepth := int(dec.BitDepth)

	switch {
	case dec.WavAudioFormat == wavFormatIEEEFloat && bitDepth == 32:
		for i, v := range pcm.Data {
			samples[i] = float64(math.Float32frombits(uint32(int32(v))))
		}
	case dec.WavAudioFormat == wavFormatIEEEFloat:
		return audio.Buffer{}, core.InvalidParameterf("decode: unsupported float wav bit depth %d", bitDepth)
	case bitDepth == 8:
		// 8-bit WAVE is unsigned with a 128 midpoint.
		for i, v := range pcm.Data {
			samples[i] = float64(v-128) / 128
		}
	default:
		scale := 1 / math.Ldexp(1, bitDepth-1)
		for i, v := range pcm.Data {
			samples[i] = float64(v) * scale
		}
	}

	return audio.Buffer{
		Samples:    samples,
		SampleRate: int(dec.SampleRate),
		Channels:   int(dec.NumChans),
	}, nil
}
