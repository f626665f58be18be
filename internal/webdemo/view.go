package webdemo

import (
	"math"

	"github.com/cwbudde/algo-pitch/dsp/core"
	"github.com/cwbudde/algo-pitch/voice"
)

// View flattens a result into values that convert directly to a JS object.
// Non-finite numbers become nil (JS null).
func View(res voice.Result) map[string]any {
	return map[string]any{
		"status":      res.Status.String(),
		"label":       res.Label.String(),
		"detected":    res.Detected(),
		"meanPitch":   finiteOrNil(res.MeanPitch),
		"threshold":   res.Threshold,
		"message":     res.Message(),
		"sampleRate":  res.SampleRate,
		"frames":      res.Summary.Frames,
		"voiced":      res.Summary.Voiced,
		"voicedRatio": res.Summary.VoicedRatio,
		"medianPitch": finiteOrNil(res.Summary.Median),
		"minPitch":    finiteOrNil(res.Summary.Min),
		"maxPitch":    finiteOrNil(res.Summary.Max),
		"rmsDB":       finiteOrNil(roundTo(res.Level.RMS_dB, 1)),
		"peakDB":      finiteOrNil(roundTo(res.Level.Peak_dB, 1)),
		"clipped":     res.Level.Clipped,
	}
}

func finiteOrNil(v float64) any {
	if !core.IsFinite(v) {
		return nil
	}
	return v
}

func roundTo(v float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	return math.Round(v*p) / p
}
