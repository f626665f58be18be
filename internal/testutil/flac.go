package testutil

import (
	"bytes"
	"math"
	"testing"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
	"github.com/mewkiz/flac/meta"
)

const flacBlockSize = 4096

// EncodeFLAC encodes interleaved samples in [-1, 1] as a FLAC stream with the
// given bit depth and returns its bytes. channels must be 1 or 2.
func EncodeFLAC(t *testing.T, samples []float64, sampleRate, channels, bitDepth int) []byte {
	t.Helper()

	var layout frame.Channels
	switch channels {
	case 1:
		layout = frame.ChannelsMono
	case 2:
		layout = frame.ChannelsLR
	default:
		t.Fatalf("EncodeFLAC: unsupported channel count %d", channels)
	}

	frames := len(samples) / channels
	info := &meta.StreamInfo{
		BlockSizeMin:  flacBlockSize,
		BlockSizeMax:  flacBlockSize,
		SampleRate:    uint32(sampleRate),
		NChannels:     uint8(channels),
		BitsPerSample: uint8(bitDepth),
		NSamples:      uint64(frames),
	}

	var buf bytes.Buffer
	enc, err := flac.NewEncoder(&buf, info)
	if err != nil {
		t.Fatalf("create flac encoder: %v", err)
	}

	full := math.Ldexp(1, bitDepth-1)
	for offset := 0; offset < frames; offset += flacBlockSize {
		n := min(flacBlockSize, frames-offset)

		f := &frame.Frame{
			Header: frame.Header{
				HasFixedBlockSize: true,
				BlockSize:         uint16(n),
				SampleRate:        uint32(sampleRate),
				Channels:          layout,
				BitsPerSample:     uint8(bitDepth),
			},
			Subframes: make([]*frame.Subframe, channels),
		}
		for ch := range channels {
			pcm := make([]int32, n)
			for i := range pcm {
				s := math.Max(-1, math.Min(1, samples[(offset+i)*channels+ch]))
				pcm[i] = int32(math.Round(s * (full - 1)))
			}
			f.Subframes[ch] = &frame.Subframe{
				SubHeader: frame.SubHeader{Pred: frame.PredVerbatim},
				Samples:   pcm,
				NSamples:  n,
			}
		}

		if err := enc.WriteFrame(f); err != nil {
			t.Fatalf("write flac frame at %d: %v", offset, err)
		}
	}

	if err := enc.Close(); err != nil {
		t.Fatalf("close flac encoder: %v", err)
	}
	return buf.Bytes()
}
