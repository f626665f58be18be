// Package decode turns encoded audio byte streams into [audio.Buffer]
// values with samples normalised to [-1, 1].
//
// Supported containers:
//   - RIFF/WAVE, integer PCM (8/16/24/32 bit) and 32-bit IEEE float
//   - FLAC
//   - MPEG-1/2 Layer III (MP3); always decoded as 16-bit stereo
//
// [Decode] sniffs the container from the first bytes of the stream and
// dispatches to the matching decoder. Malformed or unsupported input wraps
// [core.ErrInvalidParameter], so callers can separate bad input from a
// recording that simply has no detectable pitch.
package decode
