// Package voice combines decoding, pitch estimation and threshold
// classification into a single synchronous call.
//
// # Usage
//
//	a, err := voice.NewAnalyzer(voice.WithThreshold(170))
//	if err != nil {
//		return err
//	}
//
//	res, err := a.AnalyzeReader(f)
//	if err != nil {
//		return err // malformed input or invalid parameters
//	}
//
//	fmt.Println(res.Message())
//
// A recording without a detectable pitch is not an error: the result has
// [StatusUndetectable], a NaN mean and the undetermined label.
//
// An Analyzer holds only immutable configuration and may be shared between
// goroutines. Per-session thresholds are threaded through
// [Analyzer.WithThreshold], which returns a modified copy.
package voice
