package core

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParameter is the error class for malformed inputs: non-positive
// sample rates, inverted frequency ranges, empty buffers and the like.
// Packages wrap it with a descriptive message; match it with errors.Is.
var ErrInvalidParameter = errors.New("invalid parameter")

// InvalidParameterf formats a message and wraps [ErrInvalidParameter].
func InvalidParameterf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvalidParameter)...)
}

// ValidateSampleRate reports an invalid parameter for non-positive rates.
func ValidateSampleRate(sampleRate int) error {
	if sampleRate <= 0 {
		return InvalidParameterf("sample rate must be > 0: %d", sampleRate)
	}
	return nil
}

// ValidateFrequencyRange checks 0 < fmin < fmax with finite bounds.
func ValidateFrequencyRange(fmin, fmax float64) error {
	if !IsFinitePositive(fmin) {
		return InvalidParameterf("fmin must be positive and finite: %g", fmin)
	}
	if !IsFinitePositive(fmax) {
		return InvalidParameterf("fmax must be positive and finite: %g", fmax)
	}
	if fmin >= fmax {
		return InvalidParameterf("fmin must be < fmax: fmin=%g fmax=%g", fmin, fmax)
	}
	return nil
}

// IsFinite reports whether x is neither NaN nor ±Inf.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// IsFinitePositive reports whether x is finite and > 0.
func IsFinitePositive(x float64) bool {
	return IsFinite(x) && x > 0
}
