// Package audio defines the decoded sample buffer shared by the decoders,
// the pitch estimator and the analyzer.
//
// A [Buffer] carries float64 samples nominally in [-1, 1], interleaved when
// it holds more than one channel, together with its sample rate. Use
// [Buffer.Mono] to obtain the channel average before any analysis that
// expects a single channel.
package audio
