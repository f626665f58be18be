package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// HarmonicTone generates a voice-like tone: a fundamental plus harmonics
// with 1/k amplitude roll-off, normalised to the given peak amplitude.
func HarmonicTone(f0, sampleRate, amplitude float64, harmonics, length int) []float64 {
	if harmonics < 1 {
		harmonics = 1
	}
	out := make([]float64, length)
	var norm float64
	for k := 1; k <= harmonics; k++ {
		norm += 1 / float64(k)
	}
	for i := range out {
		t := float64(i) / sampleRate
		var v float64
		for k := 1; k <= harmonics; k++ {
			fk := f0 * float64(k)
			if fk >= sampleRate/2 {
				break
			}
			v += math.Sin(2*math.Pi*fk*t) / float64(k)
		}
		out[i] = amplitude * v / norm
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Silence returns length zero samples.
func Silence(length int) []float64 {
	return make([]float64, length)
}

// Concat joins signals end to end.
func Concat(parts ...[]float64) []float64 {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]float64, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
