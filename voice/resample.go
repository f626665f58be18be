//go:build !js

package voice

import (
	"github.com/cwbudde/algo-pitch/dsp/resample"
	resampling "github.com/tphakala/go-audio-resampling"
)

// resampleMono converts mono from one rate to another. The filter tail is
// flushed so short clips keep their full length, and the result is trimmed
// or zero-padded to the same length the pure-Go path produces.
func resampleMono(mono []float64, from, to int) ([]float64, error) {
	out, err := resampling.ResampleMono(mono, float64(from), float64(to), resampling.QualityHigh)
	if err != nil {
		return nil, err
	}
	return fitLength(out, resample.OutputLen(len(mono), from, to)), nil
}

func fitLength(s []float64, n int) []float64 {
	if len(s) >= n {
		return s[:n]
	}
	return append(s, make([]float64, n-len(s))...)
}
