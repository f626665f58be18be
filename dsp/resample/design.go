package resample

import "math"

// newFilter designs a Kaiser-windowed sinc lowpass with an odd length, so
// the centre tap is exact. Taps sum to up, which keeps unity gain after
// zero stuffing.
func newFilter(up, down int, prof Profile) filter {
	n := prof.TapsPerPhase*up + 1
	center := n / 2
	fc := 0.5 / float64(max(up, down)) * prof.CutoffScale

	taps := make([]float64, n)
	var sum float64
	for i := range taps {
		x := float64(i - center)
		taps[i] = 2 * fc * sinc(2*fc*x) * kaiser(i, n, prof.KaiserBeta)
		sum += taps[i]
	}

	scale := float64(up) / sum
	for i := range taps {
		taps[i] *= scale
	}

	return filter{up: up, down: down, center: center, taps: taps}
}

func sinc(x float64) float64 {
	if math.Abs(x) < 1e-12 {
		return 1
	}
	px := math.Pi * x
	return math.Sin(px) / px
}

func kaiser(i, n int, beta float64) float64 {
	if n <= 1 || beta == 0 {
		return 1
	}
	t := 2*float64(i)/float64(n-1) - 1
	return besselI0(beta*math.Sqrt(math.Max(0, 1-t*t))) / besselI0(beta)
}

// besselI0 evaluates the zeroth-order modified Bessel function by its power
// series.
func besselI0(x float64) float64 {
	sum, term := 1.0, 1.0
	q := x * x / 4
	for k := 1; k < 64; k++ {
		term *= q / float64(k*k)
		sum += term
		if term < 1e-16*sum {
			break
		}
	}
	return sum
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}
