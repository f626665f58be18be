// Package resample converts mono signals between integer sample rates with a
// windowed-sinc polyphase FIR.
//
// The conversion is one-shot: the whole input is available, so the filter's
// group delay is removed and the output holds exactly ceil(n*to/from)
// samples aligned with the input. It is the portable fallback for builds
// where the SIMD resampler is unavailable.
package resample

import (
	"github.com/cwbudde/algo-pitch/dsp/core"
)

// Quality selects the anti-aliasing filter length and window.
type Quality int

const (
	// QualityFast uses short filters.
	QualityFast Quality = iota
	// QualityBalanced is the default.
	QualityBalanced
	// QualityBest uses long filters with high stopband attenuation.
	QualityBest
)

// Profile holds the filter parameters of a quality mode.
type Profile struct {
	TapsPerPhase int
	CutoffScale  float64
	KaiserBeta   float64
}

// QualityProfile returns the filter parameters used for q.
func QualityProfile(q Quality) Profile {
	switch q {
	case QualityFast:
		return Profile{TapsPerPhase: 16, CutoffScale: 0.88, KaiserBeta: 5.0}
	case QualityBest:
		return Profile{TapsPerPhase: 64, CutoffScale: 0.96, KaiserBeta: 9.0}
	default:
		return Profile{TapsPerPhase: 32, CutoffScale: 0.92, KaiserBeta: 7.5}
	}
}

// maxFilterTaps caps the prototype filter for rate pairs whose reduced
// ratio is large, e.g. 44100 to 44101 Hz.
const maxFilterTaps = 1 << 22

// Option configures a conversion.
type Option func(*Profile)

// WithQuality selects a predefined quality mode.
func WithQuality(q Quality) Option {
	return func(p *Profile) { *p = QualityProfile(q) }
}

// WithTapsPerPhase overrides the taps per polyphase branch.
func WithTapsPerPhase(n int) Option {
	return func(p *Profile) {
		if n > 0 {
			p.TapsPerPhase = n
		}
	}
}

// Ratio returns from and to reduced by their greatest common divisor, as
// the up and down factors of the conversion.
func Ratio(from, to int) (up, down int) {
	g := gcd(from, to)
	return to / g, from / g
}

// OutputLen returns the number of samples Convert produces for n input
// samples.
func OutputLen(n, from, to int) int {
	if n <= 0 || from <= 0 || to <= 0 {
		return 0
	}
	up, down := Ratio(from, to)
	return int((int64(n)*int64(up) + int64(down) - 1) / int64(down))
}

// Convert resamples input from rate from to rate to. Equal rates return a
// copy of the input.
func Convert(input []float64, from, to int, opts ...Option) ([]float64, error) {
	if err := core.ValidateSampleRate(from); err != nil {
		return nil, err
	}
	if err := core.ValidateSampleRate(to); err != nil {
		return nil, err
	}

	if from == to {
		return append([]float64(nil), input...), nil
	}

	prof := QualityProfile(QualityBalanced)
	for _, opt := range opts {
		if opt != nil {
			opt(&prof)
		}
	}

	up, down := Ratio(from, to)
	if int64(prof.TapsPerPhase)*int64(up) > maxFilterTaps {
		return nil, core.InvalidParameterf("resample: %d->%d Hz needs a %d-phase filter", from, to, up)
	}

	f := newFilter(up, down, prof)
	out := make([]float64, OutputLen(len(input), from, to))
	for j := range out {
		out[j] = f.at(input, j)
	}

	return out, nil
}

// filter is a lowpass prototype evaluated at the upsampled rate. Output j
// sits at upsampled position j*down, shifted by the centre tap so the
// result is not delayed.
type filter struct {
	up, down int
	center   int
	taps     []float64
}

func (f filter) at(input []float64, j int) float64 {
	t := j*f.down + f.center

	// Only taps that land on an original sample contribute.
	var y float64
	for n := t % f.up; n < len(f.taps); n += f.up {
		i := (t - n) / f.up
		if i < 0 {
			break
		}
		if i < len(input) {
			y += f.taps[n] * input[i]
		}
	}
	return y
}
