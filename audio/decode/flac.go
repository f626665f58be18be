package decode

import (
	"errors"
	"io"
	"math"

	"github.com/cwbudde/algo-pitch/audio"
	"github.com/cwbudde/algo-pitch/dsp/core"
	"github.com/mewkiz/flac"
)

// maxPrealloc bounds the buffer capacity, in samples across all channels,
// reserved from the length a STREAMINFO block claims. Longer streams grow by
// append.
const maxPrealloc = 1 << 22

// DecodeFLAC decodes a FLAC stream frame by frame.
func DecodeFLAC(r io.Reader) (audio.Buffer, error) {
	stream, err := flac.New(r)
	if err != nil {
		return audio.Buffer{}, invalidStream("flac", err)
	}
	defer stream.Close()

	info := stream.Info
	channels := int(info.NChannels)
	if channels == 0 || info.SampleRate == 0 {
		return audio.Buffer{}, core.InvalidParameterf("decode: flac stream info has %d channels at %d Hz",
			channels, info.SampleRate)
	}

	scale := 1 / math.Ldexp(1, int(info.BitsPerSample)-1)
	samples := make([]float64, 0, preallocHint(info.NSamples, channels))

	for {
		f, err := stream.ParseNext()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return audio.Buffer{}, invalidStream("flac", err)
		}
		if len(f.Subframes) != channels {
			return audio.Buffer{}, core.InvalidParameterf("decode: flac frame has %d subframes, want %d",
				len(f.Subframes), channels)
		}

		n := len(f.Subframes[0].Samples)
		for i := 0; i < n; i++ {
			for _, sub := range f.Subframes {
				samples = append(samples, float64(sub.Samples[i])*scale)
			}
		}
	}

	if len(samples) == 0 {
		return audio.Buffer{}, core.InvalidParameterf("decode: flac stream has no audio frames")
	}

	return audio.Buffer{
		Samples:    samples,
		SampleRate: int(info.SampleRate),
		Channels:   channels,
	}, nil
}

// preallocHint returns the sample capacity worth reserving up front. The
// header value is untrusted, so it is clamped to maxPrealloc.
func preallocHint(nsamples uint64, channels int) int {
	if nsamples > maxPrealloc {
		return maxPrealloc
	}
	return int(min(nsamples*uint64(channels), maxPrealloc))
}
