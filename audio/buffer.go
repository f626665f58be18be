package audio

import (
	"time"

	"github.com/cwbudde/algo-pitch/dsp/core"
)

// Buffer is a decoded PCM buffer.
//
// Samples are interleaved frame by frame when Channels > 1. A zero Channels
// value is treated as mono so that Buffer{Samples: s, SampleRate: sr} is
// usable as is.
type Buffer struct {
	Samples    []float64
	SampleRate int
	Channels   int
}

// NewMono wraps samples as a single-channel buffer without copying.
func NewMono(samples []float64, sampleRate int) Buffer {
	return Buffer{Samples: samples, SampleRate: sampleRate, Channels: 1}
}

// NumChannels returns the channel count, mapping 0 to 1.
func (b Buffer) NumChannels() int {
	if b.Channels == 0 {
		return 1
	}
	return b.Channels
}

// NumFrames returns the number of sample frames (samples per channel).
func (b Buffer) NumFrames() int {
	ch := b.NumChannels()
	if ch <= 0 {
		return 0
	}
	return len(b.Samples) / ch
}

// Duration returns the playback length of the buffer.
func (b Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(b.NumFrames()) / float64(b.SampleRate) * float64(time.Second))
}

// Validate checks the buffer metadata. It does not reject empty buffers;
// consumers that need samples check the length themselves.
func (b Buffer) Validate() error {
	if err := core.ValidateSampleRate(b.SampleRate); err != nil {
		return err
	}
	if b.Channels < 0 {
		return core.InvalidParameterf("channel count must be >= 1: %d", b.Channels)
	}
	if ch := b.NumChannels(); len(b.Samples)%ch != 0 {
		return core.InvalidParameterf("interleaved sample count %d is not a multiple of %d channels",
			len(b.Samples), ch)
	}
	return nil
}

// Mono returns the per-frame channel average as a new slice. For mono
// buffers it returns a copy so callers never alias the source samples.
func (b Buffer) Mono() []float64 {
	ch := b.NumChannels()
	if ch <= 1 {
		out := make([]float64, len(b.Samples))
		copy(out, b.Samples)
		return out
	}
	return Downmix(b.Samples, ch)
}

// Downmix averages interleaved channels into a mono signal. A trailing
// partial frame is dropped.
func Downmix(interleaved []float64, channels int) []float64 {
	if channels <= 1 {
		out := make([]float64, len(interleaved))
		copy(out, interleaved)
		return out
	}

	frames := len(interleaved) / channels
	out := make([]float64, frames)
	scale := 1 / float64(channels)

	for i := range out {
		frame := interleaved[i*channels : (i+1)*channels]
		var sum float64
		for _, x := range frame {
			sum += x
		}
		out[i] = sum * scale
	}

	return out
}

// Interleave builds an interleaved buffer from equally sized channel slices.
// Channels shorter than the first are zero-padded.
func Interleave(sampleRate int, channels ...[]float64) Buffer {
	if len(channels) == 0 {
		return Buffer{SampleRate: sampleRate, Channels: 1}
	}

	frames := len(channels[0])
	out := make([]float64, frames*len(channels))
	for c, data := range channels {
		for i := 0; i < frames && i < len(data); i++ {
			out[i*len(channels)+c] = data[i]
		}
	}

	return Buffer{Samples: out, SampleRate: sampleRate, Channels: len(channels)}
}
