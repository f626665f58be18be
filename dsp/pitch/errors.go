package pitch

import (
	"math"

	"github.com/cwbudde/algo-pitch/dsp/core"
)

func validateConfig(cfg Config) error {
	if err := core.ValidateFrequencyRange(cfg.FMin, cfg.FMax); err != nil {
		return err
	}
	if cfg.FrameLength < 0 {
		return core.InvalidParameterf("frame length must be >= 0: %d", cfg.FrameLength)
	}
	if cfg.HopLength < 0 {
		return core.InvalidParameterf("hop length must be >= 0: %d", cfg.HopLength)
	}
	if math.IsNaN(cfg.TroughThreshold) || cfg.TroughThreshold <= 0 || cfg.TroughThreshold > 1 {
		return core.InvalidParameterf("trough threshold must be in (0,1]: %g", cfg.TroughThreshold)
	}
	if !core.IsFinite(cfg.SilenceFloor) || cfg.SilenceFloor < 0 {
		return core.InvalidParameterf("silence floor must be finite and >= 0: %g", cfg.SilenceFloor)
	}
	return nil
}
