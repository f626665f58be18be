// Package level reports input level statistics for a recording so that a
// failed pitch estimate can be explained (too quiet, clipped, DC only).
package level

import (
	"math"

	"github.com/cwbudde/algo-pitch/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// ClipLevel is the absolute sample value counted as clipped.
const ClipLevel = 0.999

// Level holds time-domain level statistics. dB fields are dBFS and -Inf
// for silent input.
//
//nolint:revive
type Level struct {
	Length         int
	DC             float64 // mean
	RMS            float64
	RMS_dB         float64
	Peak           float64 // max |x|
	Peak_dB        float64
	CrestFactor_dB float64
	ZeroCrossings  int
	Clipped        int // samples with |x| >= ClipLevel
}

func emptyLevel() Level {
	return Level{
		RMS_dB:  math.Inf(-1),
		Peak_dB: math.Inf(-1),
	}
}

// Calculate computes level statistics in a single pass over the samples.
func Calculate(samples []float64) Level {
	n := len(samples)
	if n == 0 {
		return emptyLevel()
	}

	sq := make([]float64, n)
	vecmath.MulBlock(sq, samples, samples)

	var (
		sum, sumSq, peak float64
		crossings        int
		clipped          int
	)

	for i, x := range samples {
		sum += x
		sumSq += sq[i]

		a := math.Abs(x)
		if a > peak {
			peak = a
		}
		if a >= ClipLevel {
			clipped++
		}

		if i > 0 && samples[i-1]*x < 0 {
			crossings++
		}
	}

	nf := float64(n)
	rms := math.Sqrt(sumSq / nf)

	var crest float64
	if rms > 0 {
		crest = core.LinearToDB(peak / rms)
	}

	return Level{
		Length:         n,
		DC:             sum / nf,
		RMS:            rms,
		RMS_dB:         core.LinearToDB(rms),
		Peak:           peak,
		Peak_dB:        core.LinearToDB(peak),
		CrestFactor_dB: crest,
		ZeroCrossings:  crossings,
		Clipped:        clipped,
	}
}

// ZeroCrossingRate returns sign changes per second.
func (l Level) ZeroCrossingRate(sampleRate int) float64 {
	if l.Length < 2 || sampleRate <= 0 {
		return 0
	}
	return float64(l.ZeroCrossings) * float64(sampleRate) / float64(l.Length-1)
}

// Silent reports whether the RMS is below floor (linear).
func (l Level) Silent(floor float64) bool {
	return l.RMS < floor
}
