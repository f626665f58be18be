// Package classify maps a mean fundamental frequency to a coarse voice
// category using a single threshold.
//
// The rule is deliberately simple: a real mean pitch strictly above the
// threshold is [Female], anything at or below it is [Male], and a missing
// (NaN or infinite) estimate is [Undetermined].
package classify

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-pitch/dsp/core"
)

const (
	// DefaultThreshold is the decision boundary in Hz.
	DefaultThreshold = 165.0
	// MinThreshold is the lowest accepted threshold in Hz.
	MinThreshold = 50.0
	// MaxThreshold is the highest accepted threshold in Hz.
	MaxThreshold = 300.0
)

// Label is a voice category.
type Label int

const (
	Undetermined Label = iota
	Male
	Female
)

var labelNames = [...]string{
	Undetermined: "Undetermined",
	Male:         "Male",
	Female:       "Female",
}

// Classify labels meanPitch against threshold. It never fails; callers that
// accept user thresholds check them with [ValidateThreshold] first.
func Classify(meanPitch, threshold float64) Label {
	if !core.IsFinite(meanPitch) {
		return Undetermined
	}
	if meanPitch > threshold {
		return Female
	}
	return Male
}

// ValidateThreshold rejects NaN and values outside [MinThreshold, MaxThreshold].
func ValidateThreshold(threshold float64) error {
	if math.IsNaN(threshold) || threshold < MinThreshold || threshold > MaxThreshold {
		return core.InvalidParameterf("threshold must be in [%g,%g] Hz: %g",
			MinThreshold, MaxThreshold, threshold)
	}
	return nil
}

// ClampThreshold forces threshold into the accepted range the way a slider
// would. NaN maps to [DefaultThreshold].
func ClampThreshold(threshold float64) float64 {
	if math.IsNaN(threshold) {
		return DefaultThreshold
	}
	return core.Clamp(threshold, MinThreshold, MaxThreshold)
}

// String returns the label name as shown to users: "Male", "Female" or
// "Undetermined".
func (l Label) String() string {
	if l < 0 || int(l) >= len(labelNames) {
		return fmt.Sprintf("Label(%d)", int(l))
	}
	return labelNames[l]
}

// Valid reports whether l is one of the defined labels.
func (l Label) Valid() bool {
	return l >= Undetermined && l <= Female
}

// MarshalText implements encoding.TextMarshaler.
func (l Label) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, core.InvalidParameterf("unknown label %d", int(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Matching is
// case-insensitive.
func (l *Label) UnmarshalText(text []byte) error {
	parsed, err := ParseLabel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLabel parses a label name.
func ParseLabel(s string) (Label, error) {
	name := strings.TrimSpace(s)
	for i, n := range labelNames {
		if strings.EqualFold(n, name) {
			return Label(i), nil
		}
	}
	return Undetermined, core.InvalidParameterf("unknown label %q", s)
}
