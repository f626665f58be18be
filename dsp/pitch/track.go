package pitch

import (
	"math"
	"sort"

	"github.com/cwbudde/algo-pitch/dsp/core"
)

// Track is a per-frame F0 sequence. Unvoiced frames hold NaN in F0 and
// Aperiodicity. Times are frame centres in seconds.
type Track struct {
	F0           []float64
	Aperiodicity []float64
	Times        []float64

	SampleRate  int
	FrameLength int
	HopLength   int
}

// Len returns the number of analysis frames.
func (t Track) Len() int { return len(t.F0) }

// Voiced returns the number of frames with a finite F0.
func (t Track) Voiced() int {
	n := 0
	for _, f := range t.F0 {
		if core.IsFinite(f) {
			n++
		}
	}
	return n
}

// Mean returns the mean F0 over voiced frames, NaN when none are voiced.
func (t Track) Mean() float64 { return MeanOf(t.F0) }

// MeanOf returns the arithmetic mean of the finite entries of f0, or NaN
// when there are none.
func MeanOf(f0 []float64) float64 {
	var (
		sum float64
		n   int
	)
	for _, f := range f0 {
		if core.IsFinite(f) {
			sum += f
			n++
		}
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// Summary describes the distribution of voiced F0 values in a track.
// Statistics are NaN when no frame is voiced.
type Summary struct {
	Frames      int
	Voiced      int
	VoicedRatio float64
	Mean        float64
	Median      float64
	Min         float64
	Max         float64
	StdDev      float64 // population standard deviation
}

// Summarize computes a [Summary] of track.
func Summarize(track Track) Summary {
	return SummarizeF0(track.F0)
}

// SummarizeF0 computes a [Summary] of raw per-frame estimates.
func SummarizeF0(f0 []float64) Summary {
	voiced := make([]float64, 0, len(f0))
	for _, f := range f0 {
		if core.IsFinite(f) {
			voiced = append(voiced, f)
		}
	}

	nan := math.NaN()
	s := Summary{
		Frames:      len(f0),
		Voiced:      len(voiced),
		VoicedRatio: 0,
		Mean:        nan,
		Median:      nan,
		Min:         nan,
		Max:         nan,
		StdDev:      nan,
	}
	if len(f0) > 0 {
		s.VoicedRatio = float64(len(voiced)) / float64(len(f0))
	}
	if len(voiced) == 0 {
		return s
	}

	sort.Float64s(voiced)
	n := len(voiced)

	s.Min = voiced[0]
	s.Max = voiced[n-1]
	if n%2 == 1 {
		s.Median = voiced[n/2]
	} else {
		s.Median = (voiced[n/2-1] + voiced[n/2]) / 2
	}

	s.Mean = MeanOf(voiced)
	var ss float64
	for _, f := range voiced {
		d := f - s.Mean
		ss += d * d
	}
	s.StdDev = math.Sqrt(ss / float64(n))

	return s
}
