package voice

import (
	"github.com/cwbudde/algo-pitch/classify"
	"github.com/cwbudde/algo-pitch/dsp/core"
	"github.com/cwbudde/algo-pitch/dsp/pitch"
)

// Config holds analyzer parameters.
type Config struct {
	// Threshold is the Male/Female decision boundary in Hz.
	Threshold float64
	// FMin and FMax bound the pitch search in Hz.
	FMin float64
	FMax float64
	// AnalysisRate resamples input to this rate before estimation.
	// Zero analyses at the native rate.
	AnalysisRate int
	// EstimatorOptions are applied after the pitch range.
	EstimatorOptions []pitch.Option
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the 165 Hz threshold with a 50-500 Hz search range.
func DefaultConfig() Config {
	return Config{
		Threshold: classify.DefaultThreshold,
		FMin:      pitch.DefaultFMin,
		FMax:      pitch.DefaultFMax,
	}
}

// WithThreshold sets the classification threshold in Hz.
func WithThreshold(threshold float64) Option {
	return func(cfg *Config) {
		cfg.Threshold = threshold
	}
}

// WithPitchRange sets the candidate F0 range in Hz.
func WithPitchRange(fmin, fmax float64) Option {
	return func(cfg *Config) {
		cfg.FMin = fmin
		cfg.FMax = fmax
	}
}

// WithAnalysisRate resamples input to hz before estimation. Zero disables
// resampling.
func WithAnalysisRate(hz int) Option {
	return func(cfg *Config) {
		cfg.AnalysisRate = hz
	}
}

// WithEstimatorOptions forwards low-level YIN options.
func WithEstimatorOptions(opts ...pitch.Option) Option {
	return func(cfg *Config) {
		cfg.EstimatorOptions = append(cfg.EstimatorOptions, opts...)
	}
}

// ApplyOptions applies opts to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

func validateConfig(cfg Config) error {
	if err := classify.ValidateThreshold(cfg.Threshold); err != nil {
		return err
	}
	if err := core.ValidateFrequencyRange(cfg.FMin, cfg.FMax); err != nil {
		return err
	}
	if cfg.AnalysisRate < 0 {
		return core.InvalidParameterf("analysis rate must be >= 0: %d", cfg.AnalysisRate)
	}
	if cfg.AnalysisRate > 0 && cfg.FMax > float64(cfg.AnalysisRate)/2 {
		return core.InvalidParameterf("fmax %g Hz exceeds Nyquist of analysis rate %d Hz",
			cfg.FMax, cfg.AnalysisRate)
	}
	return nil
}
