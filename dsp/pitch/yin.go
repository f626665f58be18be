package pitch

import (
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-pitch/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// degenerateEps scales the frame energy to decide that a difference function
// carries no periodic structure at all (e.g. a constant frame).
const degenerateEps = 1e-9

// geometry holds the per-sample-rate frame layout and period search range.
type geometry struct {
	frameLen  int
	winLen    int
	hop       int
	minPeriod int
	maxPeriod int
}

func newGeometry(cfg Config, sampleRate int) (geometry, error) {
	sr := float64(sampleRate)
	if cfg.FMax > sr/2 {
		return geometry{}, core.InvalidParameterf("fmax %g Hz exceeds Nyquist %g Hz", cfg.FMax, sr/2)
	}

	minPeriod := int(math.Floor(sr / cfg.FMax))
	maxLag := int(math.Ceil(sr / cfg.FMin))

	frameLen := cfg.FrameLength
	if frameLen == 0 {
		frameLen = core.NextPowerOf2(2 * (maxLag + 1))
	}

	winLen := frameLen / 2
	maxPeriod := min(maxLag, frameLen-winLen-1)
	if maxPeriod < minPeriod {
		return geometry{}, core.InvalidParameterf("frame length %d too short for %g-%g Hz at %d Hz",
			frameLen, cfg.FMin, cfg.FMax, sampleRate)
	}

	hop := cfg.HopLength
	if hop == 0 {
		hop = max(frameLen/4, 1)
	}

	return geometry{
		frameLen:  frameLen,
		winLen:    winLen,
		hop:       hop,
		minPeriod: minPeriod,
		maxPeriod: maxPeriod,
	}, nil
}

// frameCount returns how many full frames fit into n samples.
func (g geometry) frameCount(n int) int {
	if n < g.frameLen {
		return 0
	}
	return 1 + (n-g.frameLen)/g.hop
}

// frameAnalyzer owns the scratch buffers and FFT plan for one Track call.
// It is not safe for concurrent use.
type frameAnalyzer struct {
	g            geometry
	sampleRate   float64
	threshold    float64
	silenceFloor float64

	plan      *algofft.Plan[complex128]
	frameIn   []complex128
	winIn     []complex128
	frameSpec []complex128
	winSpec   []complex128
	corr      []complex128

	sq   []float64
	cum  []float64
	diff []float64
	cmnd []float64
}

func newFrameAnalyzer(cfg Config, g geometry, sampleRate int) *frameAnalyzer {
	a := &frameAnalyzer{
		g:            g,
		sampleRate:   float64(sampleRate),
		threshold:    cfg.TroughThreshold,
		silenceFloor: cfg.SilenceFloor,
		sq:           make([]float64, g.frameLen),
		cum:          make([]float64, g.frameLen+1),
		diff:         make([]float64, g.maxPeriod+2),
		cmnd:         make([]float64, g.maxPeriod+2),
	}

	// Lags stay below frameLen, so a frame-sized transform never wraps.
	fftSize := core.NextPowerOf2(g.frameLen)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		// Every frame degrades to unvoiced.
		return a
	}

	a.plan = plan
	a.frameIn = make([]complex128, fftSize)
	a.winIn = make([]complex128, fftSize)
	a.frameSpec = make([]complex128, fftSize)
	a.winSpec = make([]complex128, fftSize)
	a.corr = make([]complex128, fftSize)

	return a
}

// analyze estimates F0 for one frame of g.frameLen samples. It returns NaN
// for both values when the frame is unvoiced or the search degenerates.
func (a *frameAnalyzer) analyze(frame []float64) (f0, aperiodicity float64) {
	nan := math.NaN()
	w := a.g.winLen

	vecmath.MulBlock(a.sq, frame, frame)
	a.cum[0] = 0
	for i, v := range a.sq {
		a.cum[i+1] = a.cum[i] + v
	}
	if !core.IsFinite(a.cum[len(frame)]) {
		return nan, nan
	}

	energy0 := a.cum[w]
	if energy0 <= 0 || math.Sqrt(energy0/float64(w)) < a.silenceFloor {
		return nan, nan
	}

	if a.plan == nil || !a.autocorrelate(frame) {
		return nan, nan
	}

	limit := a.g.maxPeriod + 1
	a.diff[0] = 0
	for tau := 1; tau <= limit; tau++ {
		energy := a.cum[tau+w] - a.cum[tau]
		d := energy0 + energy - 2*real(a.corr[tau])
		if d < 0 {
			d = 0
		}
		a.diff[tau] = d
	}

	a.cmnd[0] = 1
	var running float64
	for tau := 1; tau <= limit; tau++ {
		running += a.diff[tau]
		if running <= 0 {
			a.cmnd[tau] = 1
			continue
		}
		a.cmnd[tau] = a.diff[tau] * float64(tau) / running
	}
	if running <= degenerateEps*energy0 {
		return nan, nan
	}

	tau := a.pickPeriod()
	aperiodicity = a.cmnd[tau]
	period := float64(tau) + parabolicShift(a.cmnd[tau-1], a.cmnd[tau], a.cmnd[tau+1])
	if !core.IsFinite(aperiodicity) || !core.IsFinitePositive(period) {
		return nan, nan
	}

	return a.sampleRate / period, aperiodicity
}

// autocorrelate fills a.corr[tau] = sum_{j<winLen} x[j]*x[j+tau].
func (a *frameAnalyzer) autocorrelate(frame []float64) bool {
	for i := range a.frameIn {
		a.frameIn[i] = 0
		a.winIn[i] = 0
	}
	for i, v := range frame {
		a.frameIn[i] = complex(v, 0)
	}
	for i := 0; i < a.g.winLen; i++ {
		a.winIn[i] = complex(frame[i], 0)
	}

	if err := a.plan.Forward(a.frameSpec, a.frameIn); err != nil {
		return false
	}
	if err := a.plan.Forward(a.winSpec, a.winIn); err != nil {
		return false
	}

	for i := range a.frameSpec {
		a.frameSpec[i] *= cmplx.Conj(a.winSpec[i])
	}

	return a.plan.Inverse(a.corr, a.frameSpec) == nil
}

// pickPeriod returns the first CMND trough below the threshold inside
// [minPeriod, maxPeriod], or the global minimum of that range.
func (a *frameAnalyzer) pickPeriod() int {
	best := a.g.minPeriod
	for tau := a.g.minPeriod; tau <= a.g.maxPeriod; tau++ {
		c := a.cmnd[tau]
		if c < a.cmnd[best] {
			best = tau
		}
		if c < a.threshold && c < a.cmnd[tau-1] && c <= a.cmnd[tau+1] {
			return tau
		}
	}
	return best
}

// parabolicShift returns the vertex offset of the parabola through three
// equally spaced points, in [-1, 1], or 0 when the fit is degenerate.
func parabolicShift(left, center, right float64) float64 {
	curvature := left + right - 2*center
	slope := (right - left) / 2
	if curvature == 0 || math.Abs(slope) >= math.Abs(curvature) {
		return 0
	}
	return -slope / curvature
}
