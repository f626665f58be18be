package pitch

const (
	// DefaultFMin is the lowest candidate frequency in Hz.
	DefaultFMin = 50.0
	// DefaultFMax is the highest candidate frequency in Hz.
	DefaultFMax = 500.0
	// DefaultTroughThreshold is the classic YIN absolute threshold.
	DefaultTroughThreshold = 0.1
	// DefaultSilenceFloor is the frame RMS (linear, ~-80 dBFS) below which a
	// frame is treated as unvoiced.
	DefaultSilenceFloor = 1e-4
)

// Config holds YIN estimation parameters.
//
// FrameLength and HopLength are in samples. A zero FrameLength derives the
// smallest power of two that fits two periods of FMin at the buffer's sample
// rate; a zero HopLength uses FrameLength/4.
type Config struct {
	FMin            float64
	FMax            float64
	FrameLength     int
	HopLength       int
	TroughThreshold float64
	SilenceFloor    float64
}

// Option mutates a Config.
//
// Unlike processor options elsewhere, out-of-range values are kept and
// rejected by [NewEstimator] so that callers learn about them.
type Option func(*Config)

// DefaultConfig returns the 50-500 Hz voice configuration.
func DefaultConfig() Config {
	return Config{
		FMin:            DefaultFMin,
		FMax:            DefaultFMax,
		TroughThreshold: DefaultTroughThreshold,
		SilenceFloor:    DefaultSilenceFloor,
	}
}

// WithFrequencyRange sets the candidate F0 range in Hz.
func WithFrequencyRange(fmin, fmax float64) Option {
	return func(cfg *Config) {
		cfg.FMin = fmin
		cfg.FMax = fmax
	}
}

// WithFrameLength fixes the analysis frame length in samples.
func WithFrameLength(n int) Option {
	return func(cfg *Config) {
		cfg.FrameLength = n
	}
}

// WithHopLength sets the distance between successive frames in samples.
func WithHopLength(n int) Option {
	return func(cfg *Config) {
		cfg.HopLength = n
	}
}

// WithTroughThreshold sets the CMND threshold in (0, 1].
func WithTroughThreshold(threshold float64) Option {
	return func(cfg *Config) {
		cfg.TroughThreshold = threshold
	}
}

// WithSilenceFloor sets the linear RMS below which frames are unvoiced.
// Zero disables the gate.
func WithSilenceFloor(floor float64) Option {
	return func(cfg *Config) {
		cfg.SilenceFloor = floor
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
