package voice

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-pitch/audio"
	"github.com/cwbudde/algo-pitch/audio/decode"
	"github.com/cwbudde/algo-pitch/classify"
	"github.com/cwbudde/algo-pitch/dsp/core"
	"github.com/cwbudde/algo-pitch/dsp/pitch"
	"github.com/cwbudde/algo-pitch/internal/testutil"
)

const testRate = 16000

func newTestAnalyzer(t *testing.T, opts ...Option) *Analyzer {
	t.Helper()

	a, err := NewAnalyzer(opts...)
	if err != nil {
		t.Fatalf("NewAnalyzer() error = %v", err)
	}
	return a
}

func TestAnalyzeClassifiesTones(t *testing.T) {
	tests := []struct {
		name      string
		f0        float64
		threshold float64
		want      classify.Label
	}{
		{name: "low voice", f0: 110, threshold: classify.DefaultThreshold, want: classify.Male},
		{name: "high voice", f0: 220, threshold: classify.DefaultThreshold, want: classify.Female},
		{name: "raised threshold", f0: 220, threshold: 250, want: classify.Male},
		{name: "lowered threshold", f0: 110, threshold: 90, want: classify.Female},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAnalyzer(t, WithThreshold(tt.threshold))
			samples := testutil.HarmonicTone(tt.f0, testRate, 0.5, 5, testRate)

			res, err := a.Analyze(audio.NewMono(samples, testRate))
			if err != nil {
				t.Fatalf("Analyze() error = %v", err)
			}

			if !res.Detected() {
				t.Fatalf("Detected() = false, want true")
			}
			if res.Label != tt.want {
				t.Fatalf("Label = %v, want %v (mean %.2f Hz)", res.Label, tt.want, res.MeanPitch)
			}
			testutil.RequireNearlyEqual(t, res.MeanPitch, tt.f0, 5)

			if res.Threshold != tt.threshold || res.SampleRate != testRate {
				t.Fatalf("Threshold/SampleRate = %g/%d", res.Threshold, res.SampleRate)
			}
			if res.Summary.Voiced == 0 || res.Level.Length != testRate {
				t.Fatalf("Summary = %+v, Level = %+v", res.Summary, res.Level)
			}
		})
	}
}

func TestAnalyzeSilenceIsUndetectable(t *testing.T) {
	a := newTestAnalyzer(t)

	res, err := a.Analyze(audio.NewMono(testutil.Silence(testRate), testRate))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if res.Detected() || res.Status != StatusUndetectable {
		t.Fatalf("Status = %v, want undetectable", res.Status)
	}
	if res.Label != classify.Undetermined {
		t.Fatalf("Label = %v, want undetermined", res.Label)
	}
	testutil.RequireNaN(t, res.MeanPitch)

	if res.Message() != UndetectableMessage {
		t.Fatalf("Message() = %q", res.Message())
	}
	if !math.IsInf(res.Level.RMS_dB, -1) {
		t.Fatalf("Level.RMS_dB = %g, want -Inf", res.Level.RMS_dB)
	}
}

func TestAnalyzeInvalidInput(t *testing.T) {
	a := newTestAnalyzer(t)
	sine := testutil.DeterministicSine(200, testRate, 0.5, 1000)

	tests := []struct {
		name string
		buf  audio.Buffer
	}{
		{name: "empty", buf: audio.NewMono(nil, testRate)},
		{name: "zero rate", buf: audio.NewMono(sine, 0)},
		{name: "ragged stereo", buf: audio.Buffer{Samples: sine[:999], SampleRate: testRate, Channels: 2}},
		{name: "rate below nyquist of fmax", buf: audio.NewMono(sine, 800)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Analyze(tt.buf)
			if !errors.Is(err, core.ErrInvalidParameter) {
				t.Fatalf("Analyze() error = %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestNewAnalyzerValidation(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{name: "threshold low", opts: []Option{WithThreshold(49)}},
		{name: "threshold high", opts: []Option{WithThreshold(301)}},
		{name: "threshold NaN", opts: []Option{WithThreshold(math.NaN())}},
		{name: "inverted range", opts: []Option{WithPitchRange(400, 100)}},
		{name: "negative analysis rate", opts: []Option{WithAnalysisRate(-1)}},
		{name: "analysis rate too low", opts: []Option{WithAnalysisRate(800)}},
		{name: "bad estimator option", opts: []Option{WithEstimatorOptions(pitch.WithTroughThreshold(2))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewAnalyzer(tt.opts...); !errors.Is(err, core.ErrInvalidParameter) {
				t.Fatalf("NewAnalyzer() error = %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestAnalyzerWithThresholdCopies(t *testing.T) {
	base := newTestAnalyzer(t)

	raised, err := base.WithThreshold(250)
	if err != nil {
		t.Fatalf("WithThreshold() error = %v", err)
	}
	if base.Threshold() != classify.DefaultThreshold {
		t.Fatalf("base threshold changed to %g", base.Threshold())
	}
	if raised.Threshold() != 250 {
		t.Fatalf("copy threshold = %g, want 250", raised.Threshold())
	}

	buf := audio.NewMono(testutil.DeterministicSine(200, testRate, 0.5, testRate), testRate)

	r1, err := base.Analyze(buf)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	r2, err := raised.Analyze(buf)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if r1.Label != classify.Female || r2.Label != classify.Male {
		t.Fatalf("labels = %v/%v, want female/male", r1.Label, r2.Label)
	}
	if r1.MeanPitch != r2.MeanPitch {
		t.Fatalf("mean pitch differs between thresholds: %g vs %g", r1.MeanPitch, r2.MeanPitch)
	}

	if _, err := base.WithThreshold(10); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("WithThreshold(10) error = %v, want ErrInvalidParameter", err)
	}
}

func TestAnalyzeResampled(t *testing.T) {
	const nativeRate = 44100

	a := newTestAnalyzer(t, WithAnalysisRate(testRate))
	samples := testutil.DeterministicSine(220, nativeRate, 0.5, nativeRate)

	res, err := a.Analyze(audio.NewMono(samples, nativeRate))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if res.SampleRate != testRate {
		t.Fatalf("SampleRate = %d, want %d", res.SampleRate, testRate)
	}
	testutil.RequireNearlyEqual(t, res.MeanPitch, 220, 5)
	if res.Label != classify.Female {
		t.Fatalf("Label = %v, want female", res.Label)
	}
}

func TestAnalyzeReaderWAV(t *testing.T) {
	left := testutil.DeterministicSine(120, testRate, 0.5, testRate)
	right := testutil.DeterministicSine(120, testRate, 0.4, testRate)
	stereo := audio.Interleave(testRate, left, right)

	data := testutil.EncodeWAV(t, stereo.Samples, testRate, 2, 16)
	a := newTestAnalyzer(t)

	res, err := a.AnalyzeReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("AnalyzeReader() error = %v", err)
	}
	if res.Label != classify.Male {
		t.Fatalf("Label = %v, want male", res.Label)
	}
	testutil.RequireNearlyEqual(t, res.MeanPitch, 120, 5)

	fromBytes, err := a.AnalyzeBytes(data)
	if err != nil {
		t.Fatalf("AnalyzeBytes() error = %v", err)
	}
	if fromBytes.MeanPitch != res.MeanPitch {
		t.Fatalf("AnalyzeBytes() mean = %g, want %g", fromBytes.MeanPitch, res.MeanPitch)
	}
}

func TestAnalyzeReaderRejectsGarbage(t *testing.T) {
	a := newTestAnalyzer(t)

	_, err := a.AnalyzeReader(bytes.NewReader([]byte("definitely not audio")))
	if !errors.Is(err, decode.ErrUnsupportedFormat) {
		t.Fatalf("AnalyzeReader() error = %v, want ErrUnsupportedFormat", err)
	}
	if !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("AnalyzeReader() error = %v, want ErrInvalidParameter class", err)
	}
}

func TestTrackMatchesAnalyze(t *testing.T) {
	a := newTestAnalyzer(t)
	buf := audio.NewMono(testutil.HarmonicTone(150, testRate, 0.5, 4, testRate), testRate)

	track, err := a.Track(buf)
	if err != nil {
		t.Fatalf("Track() error = %v", err)
	}
	res, err := a.Analyze(buf)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if track.Mean() != res.MeanPitch {
		t.Fatalf("Track().Mean() = %g, Analyze() = %g", track.Mean(), res.MeanPitch)
	}
}

func TestStatusText(t *testing.T) {
	for _, s := range []Status{StatusDetected, StatusUndetectable} {
		text, err := s.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText() error = %v", err)
		}
		var back Status
		if err := back.UnmarshalText(text); err != nil || back != s {
			t.Fatalf("UnmarshalText(%q) = %v, %v", text, back, err)
		}
	}
	if _, err := Status(9).MarshalText(); err == nil {
		t.Fatal("MarshalText(9) error = nil")
	}
}

func TestResultMessage(t *testing.T) {
	res := newResult(212.34, 165)
	if got, want := res.Message(), "Female voice, mean pitch 212.3 Hz (threshold 165 Hz)"; got != want {
		t.Fatalf("Message() = %q, want %q", got, want)
	}
}
