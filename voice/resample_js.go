//go:build js

package voice

import (
	"github.com/cwbudde/algo-pitch/dsp/resample"
)

// resampleMono converts mono with the pure-Go polyphase resampler; the SIMD
// resampler has no js/wasm implementation.
func resampleMono(mono []float64, from, to int) ([]float64, error) {
	return resample.Convert(mono, from, to)
}
