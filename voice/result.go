package voice

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-pitch/classify"
	"github.com/cwbudde/algo-pitch/dsp/core"
	"github.com/cwbudde/algo-pitch/dsp/pitch"
	"github.com/cwbudde/algo-pitch/stats/level"
)

// UndetectableMessage is shown when no frame carries a usable pitch.
const UndetectableMessage = "could not detect pitch, try again in a quieter environment"

// Status tells a detected pitch apart from an undetectable one.
type Status int

const (
	StatusDetected Status = iota
	StatusUndetectable
)

// String returns the lower-case status name.
func (s Status) String() string {
	switch s {
	case StatusDetected:
		return "detected"
	case StatusUndetectable:
		return "undetectable"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	if s != StatusDetected && s != StatusUndetectable {
		return nil, core.InvalidParameterf("unknown status %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "detected":
		*s = StatusDetected
	case "undetectable":
		*s = StatusUndetectable
	default:
		return core.InvalidParameterf("unknown status %q", text)
	}
	return nil
}

// Result is the outcome of one analysis.
//
// Label is Female iff MeanPitch is real and above Threshold, Male iff it is
// real and at most Threshold, and Undetermined otherwise.
type Result struct {
	MeanPitch float64
	Label     classify.Label
	Status    Status
	Threshold float64

	// SampleRate is the rate the pitch was estimated at.
	SampleRate int
	Summary    pitch.Summary
	Level      level.Level
}

// Detected reports whether a mean pitch was found.
func (r Result) Detected() bool {
	return r.Status == StatusDetected
}

// Message returns a short user-facing description of the result.
func (r Result) Message() string {
	if !r.Detected() {
		return UndetectableMessage
	}
	return fmt.Sprintf("%s voice, mean pitch %.1f Hz (threshold %g Hz)",
		r.Label, r.MeanPitch, r.Threshold)
}

func newResult(mean, threshold float64) Result {
	res := Result{
		MeanPitch: mean,
		Label:     classify.Classify(mean, threshold),
		Status:    StatusDetected,
		Threshold: threshold,
	}
	if res.Label == classify.Undetermined {
		res.Status = StatusUndetectable
	}
	return res
}
