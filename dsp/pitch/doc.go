// Package pitch estimates the fundamental frequency (F0) of a recorded
// voice with the YIN algorithm.
//
// The estimator splits the signal into overlapping analysis frames and, for
// each frame, computes the cumulative mean normalised difference function
// (CMND) over candidate periods between fmax and fmin. The first trough of
// the CMND below the trough threshold selects the period; when no trough
// qualifies the global minimum is used. Parabolic interpolation refines the
// period to sub-sample precision.
//
// Frames that are silent, contain non-finite samples or whose search
// degenerates numerically are reported as NaN instead of a guess. The mean
// pitch ignores NaN frames and is itself NaN when nothing was voiced.
//
// # Usage
//
//	mean, err := pitch.EstimateMean(buf)                       // 50-500 Hz
//	mean, err := pitch.EstimateMean(buf, pitch.WithFrequencyRange(70, 400))
//
//	est, err := pitch.NewEstimator()
//	track, err := est.Track(buf)
//	summary := pitch.Summarize(track)
//
// Invalid parameters (non-positive sample rate, fmin >= fmax, fmax above
// Nyquist, empty buffers) return errors wrapping [core.ErrInvalidParameter].
// A signal without detectable pitch is not an error.
package pitch
