package commands

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/cwbudde/algo-pitch/classify"
	"github.com/cwbudde/algo-pitch/dsp/pitch"
	"github.com/cwbudde/algo-pitch/voice"
)

// Config is the YAML file layout. Zero values fall back to defaults.
type Config struct {
	Threshold    float64      `yaml:"threshold"`
	FMin         float64      `yaml:"fmin"`
	FMax         float64      `yaml:"fmax"`
	AnalysisRate int          `yaml:"analysis_rate"`
	Format       OutputFormat `yaml:"format"`
}

// DefaultConfig returns the CLI defaults.
func DefaultConfig() Config {
	return Config{
		Threshold: classify.DefaultThreshold,
		FMin:      pitch.DefaultFMin,
		FMax:      pitch.DefaultFMax,
		Format:    FormatYAML,
	}
}

// LoadConfig reads a YAML config file on top of the defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	def := DefaultConfig()
	if cfg.Threshold == 0 {
		cfg.Threshold = def.Threshold
	}
	if cfg.FMin == 0 {
		cfg.FMin = def.FMin
	}
	if cfg.FMax == 0 {
		cfg.FMax = def.FMax
	}
	if cfg.Format == "" {
		cfg.Format = def.Format
	}

	return cfg, nil
}

// AnalyzerOptions maps the config onto analyzer options.
func (c Config) AnalyzerOptions() []voice.Option {
	return []voice.Option{
		voice.WithThreshold(c.Threshold),
		voice.WithPitchRange(c.FMin, c.FMax),
		voice.WithAnalysisRate(c.AnalysisRate),
	}
}
