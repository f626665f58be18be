package pitch

import (
	"github.com/cwbudde/algo-pitch/audio"
	"github.com/cwbudde/algo-pitch/dsp/core"
)

// Estimator computes YIN pitch tracks. It holds only immutable
// configuration and may be shared between goroutines.
type Estimator struct {
	cfg Config
}

// NewEstimator validates the options and returns an estimator.
func NewEstimator(opts ...Option) (*Estimator, error) {
	cfg := ApplyOptions(opts...)
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return &Estimator{cfg: cfg}, nil
}

// EstimateMean is a one-shot mean pitch estimate. The result is NaN, with a
// nil error, when no frame carries a detectable pitch.
func EstimateMean(buf audio.Buffer, opts ...Option) (float64, error) {
	e, err := NewEstimator(opts...)
	if err != nil {
		return 0, err
	}
	return e.Mean(buf)
}

// Config returns the estimator configuration.
func (e *Estimator) Config() Config { return e.cfg }

// Mean returns the mean F0 over voiced frames of buf.
func (e *Estimator) Mean(buf audio.Buffer) (float64, error) {
	track, err := e.Track(buf)
	if err != nil {
		return 0, err
	}
	return track.Mean(), nil
}

// Track returns the per-frame F0 estimates of buf. Multi-channel buffers are
// downmixed by averaging channels first. A buffer shorter than one analysis
// frame yields an empty track.
func (e *Estimator) Track(buf audio.Buffer) (Track, error) {
	if err := buf.Validate(); err != nil {
		return Track{}, err
	}
	if len(buf.Samples) == 0 {
		return Track{}, core.InvalidParameterf("audio buffer is empty")
	}

	g, err := newGeometry(e.cfg, buf.SampleRate)
	if err != nil {
		return Track{}, err
	}

	mono := buf.Samples
	if buf.NumChannels() > 1 {
		mono = buf.Mono()
	}

	return e.track(mono, buf.SampleRate, g), nil
}

func (e *Estimator) track(mono []float64, sampleRate int, g geometry) Track {
	n := g.frameCount(len(mono))
	t := Track{
		F0:           make([]float64, n),
		Aperiodicity: make([]float64, n),
		Times:        make([]float64, n),
		SampleRate:   sampleRate,
		FrameLength:  g.frameLen,
		HopLength:    g.hop,
	}
	if n == 0 {
		return t
	}

	a := newFrameAnalyzer(e.cfg, g, sampleRate)
	sr := float64(sampleRate)

	for i := 0; i < n; i++ {
		start := i * g.hop
		t.F0[i], t.Aperiodicity[i] = a.analyze(mono[start : start+g.frameLen])
		t.Times[i] = (float64(start) + float64(g.frameLen)/2) / sr
	}

	return t
}
