package decode

import (
	"encoding/binary"
	"io"

	"github.com/cwbudde/algo-pitch/audio"
	"github.com/hajimehoshi/go-mp3"
)

// go-mp3 always emits interleaved 16-bit little-endian stereo.
const (
	mp3Channels       = 2
	mp3BytesPerSample = 2
)

// DecodeMP3 decodes an MP3 stream. The result is always two channels; mono
// sources come out with identical left and right samples.
func DecodeMP3(r io.Reader) (audio.Buffer, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return audio.Buffer{}, invalidStream("mp3", err)
	}

	raw, err := io.ReadAll(dec)
	if err != nil {
		return audio.Buffer{}, invalidStream("mp3", err)
	}

	frameBytes := mp3Channels * mp3BytesPerSample
	raw = raw[:len(raw)/frameBytes*frameBytes]

	samples := make([]float64, len(raw)/mp3BytesPerSample)
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(raw[i*mp3BytesPerSample:]))
		samples[i] = float64(v) / 32768
	}

	return audio.Buffer{
		Samples:    samples,
		SampleRate: dec.SampleRate(),
		Channels:   mp3Channels,
	}, nil
}
