package webdemo

import (
	"fmt"

	"github.com/cwbudde/algo-pitch/audio"
	"github.com/cwbudde/algo-pitch/classify"
	"github.com/cwbudde/algo-pitch/dsp/core"
	"github.com/cwbudde/algo-pitch/voice"
)

// Session is the browser-side state of the voice demo: the threshold set by
// the slider and the last analysis. It is driven from the JS event loop and
// is not safe for concurrent use.
type Session struct {
	analyzer *voice.Analyzer
	last     *voice.Result
}

// NewSession creates a session with the default 165 Hz threshold.
func NewSession(opts ...voice.Option) (*Session, error) {
	a, err := voice.NewAnalyzer(opts...)
	if err != nil {
		return nil, err
	}
	return &Session{analyzer: a}, nil
}

// SetThreshold clamps hz into the slider range, stores it and returns the
// applied value.
func (s *Session) SetThreshold(hz float64) float64 {
	hz = classify.ClampThreshold(hz)

	a, err := s.analyzer.WithThreshold(hz)
	if err != nil {
		// Unreachable after clamping.
		return s.analyzer.Threshold()
	}
	s.analyzer = a

	return hz
}

// Threshold returns the current threshold in Hz.
func (s *Session) Threshold() float64 {
	return s.analyzer.Threshold()
}

// AnalyzeSamples analyzes interleaved float32 samples as captured by the
// Web Audio API.
func (s *Session) AnalyzeSamples(samples []float32, sampleRate float64, channels int) (voice.Result, error) {
	if !core.IsFinitePositive(sampleRate) {
		return voice.Result{}, core.InvalidParameterf("sample rate must be > 0: %g", sampleRate)
	}
	if channels <= 0 {
		channels = 1
	}

	data := make([]float64, len(samples))
	for i, v := range samples {
		data[i] = float64(v)
	}

	buf := audio.Buffer{Samples: data, SampleRate: int(sampleRate + 0.5), Channels: channels}
	return s.remember(s.analyzer.Analyze(buf))
}

// AnalyzeWAV analyzes an encoded recording (WAVE, FLAC or MP3).
func (s *Session) AnalyzeWAV(data []byte) (voice.Result, error) {
	return s.remember(s.analyzer.AnalyzeBytes(data))
}

// Last returns the most recent successful result.
func (s *Session) Last() (voice.Result, bool) {
	if s.last == nil {
		return voice.Result{}, false
	}
	return *s.last, true
}

// Reset forgets the last result. The threshold is kept.
func (s *Session) Reset() {
	s.last = nil
}

func (s *Session) remember(res voice.Result, err error) (voice.Result, error) {
	if err != nil {
		return voice.Result{}, fmt.Errorf("analyze recording: %w", err)
	}
	s.last = &res
	return res, nil
}
