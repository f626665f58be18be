package voice

import (
	"fmt"
	"io"

	"github.com/cwbudde/algo-pitch/audio"
	"github.com/cwbudde/algo-pitch/audio/decode"
	"github.com/cwbudde/algo-pitch/classify"
	"github.com/cwbudde/algo-pitch/dsp/core"
	"github.com/cwbudde/algo-pitch/dsp/pitch"
	"github.com/cwbudde/algo-pitch/stats/level"
)

// Analyzer estimates the mean pitch of a recording and classifies it.
type Analyzer struct {
	cfg Config
	est *pitch.Estimator
}

// NewAnalyzer validates the options and builds an analyzer.
func NewAnalyzer(opts ...Option) (*Analyzer, error) {
	cfg := ApplyOptions(opts...)
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	estOpts := append([]pitch.Option{pitch.WithFrequencyRange(cfg.FMin, cfg.FMax)}, cfg.EstimatorOptions...)

	est, err := pitch.NewEstimator(estOpts...)
	if err != nil {
		return nil, err
	}

	return &Analyzer{cfg: cfg, est: est}, nil
}

// Config returns the analyzer configuration.
func (a *Analyzer) Config() Config { return a.cfg }

// Threshold returns the classification threshold in Hz.
func (a *Analyzer) Threshold() float64 { return a.cfg.Threshold }

// WithThreshold returns a copy of a that classifies against threshold.
func (a *Analyzer) WithThreshold(threshold float64) (*Analyzer, error) {
	if err := classify.ValidateThreshold(threshold); err != nil {
		return nil, err
	}
	cp := *a
	cp.cfg.Threshold = threshold
	return &cp, nil
}

// Analyze estimates and classifies the mean pitch of buf.
func (a *Analyzer) Analyze(buf audio.Buffer) (Result, error) {
	mono, rate, err := a.prepare(buf)
	if err != nil {
		return Result{}, err
	}

	lvl := level.Calculate(mono)

	mono, rate, err = a.resample(mono, rate)
	if err != nil {
		return Result{}, err
	}

	track, err := a.track(mono, rate)
	if err != nil {
		return Result{}, err
	}

	res := newResult(track.Mean(), a.cfg.Threshold)
	res.SampleRate = rate
	res.Summary = pitch.Summarize(track)
	res.Level = lvl

	return res, nil
}

// AnalyzeReader decodes r and analyzes it. Unsupported or malformed
// streams are reported as invalid parameters.
func (a *Analyzer) AnalyzeReader(r io.ReadSeeker) (Result, error) {
	buf, err := decode.Decode(r)
	if err != nil {
		return Result{}, err
	}
	return a.Analyze(buf)
}

// AnalyzeBytes decodes an in-memory file and analyzes it.
func (a *Analyzer) AnalyzeBytes(data []byte) (Result, error) {
	buf, err := decode.DecodeBytes(data)
	if err != nil {
		return Result{}, err
	}
	return a.Analyze(buf)
}

// Track returns the per-frame pitch estimates that Analyze averages.
func (a *Analyzer) Track(buf audio.Buffer) (pitch.Track, error) {
	mono, rate, err := a.prepare(buf)
	if err != nil {
		return pitch.Track{}, err
	}

	mono, rate, err = a.resample(mono, rate)
	if err != nil {
		return pitch.Track{}, err
	}

	return a.track(mono, rate)
}

func (a *Analyzer) prepare(buf audio.Buffer) ([]float64, int, error) {
	if err := buf.Validate(); err != nil {
		return nil, 0, err
	}
	if len(buf.Samples) == 0 {
		return nil, 0, core.InvalidParameterf("audio buffer is empty")
	}
	return buf.Mono(), buf.SampleRate, nil
}

func (a *Analyzer) track(mono []float64, rate int) (pitch.Track, error) {
	if len(mono) == 0 {
		return pitch.Track{SampleRate: rate}, nil
	}
	return a.est.Track(audio.NewMono(mono, rate))
}

func (a *Analyzer) resample(mono []float64, rate int) ([]float64, int, error) {
	target := a.cfg.AnalysisRate
	if target == 0 || target == rate {
		return mono, rate, nil
	}

	out, err := resampleMono(mono, rate, target)
	if err != nil {
		return nil, 0, fmt.Errorf("resample %d->%d Hz: %w", rate, target, err)
	}

	return out, target, nil
}
