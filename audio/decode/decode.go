package decode

import (
	"bytes"
	"fmt"
	"io"

	"github.com/cwbudde/algo-pitch/audio"
	"github.com/cwbudde/algo-pitch/dsp/core"
)

// Format identifies an audio container.
type Format int

const (
	FormatUnknown Format = iota
	FormatWAV
	FormatFLAC
	FormatMP3
)

// ErrUnsupportedFormat is returned when the container cannot be identified.
var ErrUnsupportedFormat = fmt.Errorf("unsupported audio container: %w", core.ErrInvalidParameter)

const sniffLen = 12

// String returns the short container name.
func (f Format) String() string {
	switch f {
	case FormatWAV:
		return "wav"
	case FormatFLAC:
		return "flac"
	case FormatMP3:
		return "mp3"
	default:
		return "unknown"
	}
}

// Sniff identifies the container from the leading bytes of a stream.
func Sniff(header []byte) Format {
	switch {
	case len(header) >= 12 && bytes.Equal(header[0:4], []byte("RIFF")) && bytes.Equal(header[8:12], []byte("WAVE")):
		return FormatWAV
	case len(header) >= 4 && bytes.Equal(header[0:4], []byte("fLaC")):
		return FormatFLAC
	case len(header) >= 3 && bytes.Equal(header[0:3], []byte("ID3")):
		return FormatMP3
	case len(header) >= 2 && header[0] == 0xFF && header[1]&0xE0 == 0xE0:
		// MPEG audio frame sync.
		return FormatMP3
	default:
		return FormatUnknown
	}
}

// Detect reads the stream header, rewinds r and reports the container.
func Detect(r io.ReadSeeker) (Format, error) {
	header := make([]byte, sniffLen)
	n, err := io.ReadFull(r, header)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return FormatUnknown, fmt.Errorf("decode: read header: %w", err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return FormatUnknown, fmt.Errorf("decode: rewind: %w", err)
	}
	return Sniff(header[:n]), nil
}

// Decode detects the container of r and decodes it in full.
func Decode(r io.ReadSeeker) (audio.Buffer, error) {
	format, err := Detect(r)
	if err != nil {
		return audio.Buffer{}, err
	}

	switch format {
	case FormatWAV:
		return DecodeWAV(r)
	case FormatFLAC:
		return DecodeFLAC(r)
	case FormatMP3:
		return DecodeMP3(r)
	default:
		return audio.Buffer{}, fmt.Errorf("decode: %w", ErrUnsupportedFormat)
	}
}

// DecodeBytes is Decode over an in-memory stream.
func DecodeBytes(data []byte) (audio.Buffer, error) {
	return Decode(bytes.NewReader(data))
}

func invalidStream(kind string, err error) error {
	return fmt.Errorf("decode: malformed %s stream: %v: %w", kind, err, core.ErrInvalidParameter)
}
