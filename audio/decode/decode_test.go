package decode

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-pitch/audio"
	"github.com/cwbudde/algo-pitch/dsp/core"
	"github.com/cwbudde/algo-pitch/internal/testutil"
)

func TestSniff(t *testing.T) {
	tests := []struct {
		name   string
		header []byte
		want   Format
	}{
		{name: "wave", header: []byte("RIFF\x24\x00\x00\x00WAVEfmt "), want: FormatWAV},
		{name: "riff not wave", header: []byte("RIFF\x24\x00\x00\x00AVI "), want: FormatUnknown},
		{name: "flac", header: []byte("fLaC\x00\x00\x00\x22"), want: FormatFLAC},
		{name: "id3", header: []byte("ID3\x04\x00"), want: FormatMP3},
		{name: "mpeg sync", header: []byte{0xFF, 0xFB, 0x90, 0x64}, want: FormatMP3},
		{name: "short", header: []byte("RI"), want: FormatUnknown},
		{name: "empty", header: nil, want: FormatUnknown},
		{name: "text", header: []byte("hello world!"), want: FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sniff(tt.header); got != tt.want {
				t.Fatalf("Sniff() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectRewinds(t *testing.T) {
	data := testutil.EncodeWAV(t, []float64{0, 0.5, -0.5}, 8000, 1, 16)
	r := bytes.NewReader(data)

	format, err := Detect(r)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if format != FormatWAV {
		t.Fatalf("Detect() = %v, want wav", format)
	}

	head := make([]byte, 4)
	if _, err := io.ReadFull(r, head); err != nil {
		t.Fatalf("read after Detect: %v", err)
	}
	if string(head) != "RIFF" {
		t.Fatalf("stream not rewound, read %q", head)
	}
}

func TestDecodeWAV(t *testing.T) {
	const sampleRate = 16000

	mono := testutil.DeterministicSine(200, sampleRate, 0.5, 1600)
	stereo := audio.Interleave(sampleRate, mono, testutil.DeterministicSine(300, sampleRate, 0.25, 1600))

	tests := []struct {
		name     string
		data     func(t *testing.T) []byte
		want     []float64
		channels int
		eps      float64
	}{
		{
			name:     "16-bit mono",
			data:     func(t *testing.T) []byte { return testutil.EncodeWAV(t, mono, sampleRate, 1, 16) },
			want:     mono,
			channels: 1,
			eps:      2.0 / 32768,
		},
		{
			name:     "16-bit stereo",
			data:     func(t *testing.T) []byte { return testutil.EncodeWAV(t, stereo.Samples, sampleRate, 2, 16) },
			want:     stereo.Samples,
			channels: 2,
			eps:      2.0 / 32768,
		},
		{
			name:     "8-bit mono",
			data:     func(t *testing.T) []byte { return testutil.EncodeWAV(t, mono, sampleRate, 1, 8) },
			want:     mono,
			channels: 1,
			eps:      2.0 / 128,
		},
		{
			name:     "24-bit mono",
			data:     func(t *testing.T) []byte { return testutil.EncodeWAV(t, mono, sampleRate, 1, 24) },
			want:     mono,
			channels: 1,
			eps:      1e-6,
		},
		{
			name:     "float mono",
			data:     func(t *testing.T) []byte { return testutil.EncodeFloatWAV(t, mono, sampleRate, 1) },
			want:     mono,
			channels: 1,
			eps:      1e-7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := Decode(bytes.NewReader(tt.data(t)))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}

			if buf.SampleRate != sampleRate || buf.Channels != tt.channels {
				t.Fatalf("format = %d Hz x %d, want %d Hz x %d",
					buf.SampleRate, buf.Channels, sampleRate, tt.channels)
			}
			if len(buf.Samples) != len(tt.want) {
				t.Fatalf("len(Samples) = %d, want %d", len(buf.Samples), len(tt.want))
			}
			for i := range tt.want {
				if math.Abs(buf.Samples[i]-tt.want[i]) > tt.eps {
					t.Fatalf("Samples[%d] = %g, want %g ± %g", i, buf.Samples[i], tt.want[i], tt.eps)
				}
			}
		})
	}
}

func TestDecodeRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "unknown container", data: []byte("this is not an audio file")},
		{name: "empty", data: nil},
		{name: "truncated wave", data: []byte("RIFF\x04\x00\x00\x00WAVE")},
		{name: "truncated flac", data: []byte("fLaC\x00\x00")},
		{name: "flac header without frames", data: flacHeaderOnly(1<<36 - 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeBytes(tt.data)
			if err == nil {
				t.Fatal("DecodeBytes() error = nil, want error")
			}
			if !errors.Is(err, core.ErrInvalidParameter) {
				t.Fatalf("DecodeBytes() error = %v, want ErrInvalidParameter class", err)
			}
		})
	}
}

func TestDecodeFLAC(t *testing.T) {
	const sampleRate = 22050

	mono := testutil.DeterministicSine(180, sampleRate, 0.5, 5000)
	stereo := audio.Interleave(sampleRate, mono, testutil.DeterministicSine(260, sampleRate, 0.25, 5000))

	tests := []struct {
		name     string
		samples  []float64
		channels int
		bitDepth int
		eps      float64
	}{
		{name: "16-bit mono", samples: mono, channels: 1, bitDepth: 16, eps: 2.0 / 32768},
		{name: "16-bit stereo", samples: stereo.Samples, channels: 2, bitDepth: 16, eps: 2.0 / 32768},
		{name: "24-bit mono", samples: mono, channels: 1, bitDepth: 24, eps: 1e-6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := testutil.EncodeFLAC(t, tt.samples, sampleRate, tt.channels, tt.bitDepth)
			if got := Sniff(data); got != FormatFLAC {
				t.Fatalf("Sniff() = %v, want flac", got)
			}

			buf, err := DecodeBytes(data)
			if err != nil {
				t.Fatalf("DecodeBytes() error = %v", err)
			}
			if buf.SampleRate != sampleRate || buf.Channels != tt.channels {
				t.Fatalf("format = %d Hz x %d, want %d Hz x %d",
					buf.SampleRate, buf.Channels, sampleRate, tt.channels)
			}
			if len(buf.Samples) != len(tt.samples) {
				t.Fatalf("len(Samples) = %d, want %d", len(buf.Samples), len(tt.samples))
			}
			for i := range tt.samples {
				if math.Abs(buf.Samples[i]-tt.samples[i]) > tt.eps {
					t.Fatalf("Samples[%d] = %g, want %g ± %g", i, buf.Samples[i], tt.samples[i], tt.eps)
				}
			}
		})
	}
}

func TestFLACPreallocHintIsBounded(t *testing.T) {
	tests := []struct {
		nsamples uint64
		channels int
		want     int
	}{
		{nsamples: 0, channels: 2, want: 0},
		{nsamples: 1000, channels: 2, want: 2000},
		{nsamples: maxPrealloc, channels: 8, want: maxPrealloc},
		{nsamples: 1<<36 - 1, channels: 8, want: maxPrealloc},
	}

	for _, tt := range tests {
		if got := preallocHint(tt.nsamples, tt.channels); got != tt.want {
			t.Fatalf("preallocHint(%d, %d) = %d, want %d", tt.nsamples, tt.channels, got, tt.want)
		}
	}
}

func TestDecodeMP3(t *testing.T) {
	const (
		sampleRate     = 22050
		mpegFrames     = 80
		samplesPerSlot = 576
	)

	data, err := os.ReadFile(filepath.Join("testdata", "speech_mono_22050.mp3"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	if got := Sniff(data); got != FormatMP3 {
		t.Fatalf("Sniff() = %v, want mp3", got)
	}

	buf, err := Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if buf.SampleRate != sampleRate || buf.Channels != 2 {
		t.Fatalf("format = %d Hz x %d, want %d Hz x 2", buf.SampleRate, buf.Channels, sampleRate)
	}

	frames := buf.NumFrames()
	if frames < (mpegFrames-2)*samplesPerSlot || frames > mpegFrames*samplesPerSlot {
		t.Fatalf("NumFrames() = %d, want about %d", frames, mpegFrames*samplesPerSlot)
	}

	// The source is mono, so both output channels carry the same signal.
	for i := 0; i < frames; i++ {
		l, r := buf.Samples[2*i], buf.Samples[2*i+1]
		if l != r {
			t.Fatalf("frame %d: left %g != right %g", i, l, r)
		}
		if l < -1 || l >= 1 {
			t.Fatalf("frame %d: sample %g outside [-1, 1)", i, l)
		}
	}
}

func TestDecodeUnknownFormat(t *testing.T) {
	_, err := DecodeBytes([]byte("OggS\x00\x02"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("DecodeBytes() error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestFormatString(t *testing.T) {
	want := map[Format]string{
		FormatUnknown: "unknown",
		FormatWAV:     "wav",
		FormatFLAC:    "flac",
		FormatMP3:     "mp3",
	}
	for f, s := range want {
		if f.String() != s {
			t.Fatalf("Format(%d).String() = %q, want %q", int(f), f.String(), s)
		}
	}
}

// flacHeaderOnly returns a FLAC signature followed by a lone STREAMINFO block
// that claims nsamples samples of 8-channel 16-bit audio at 44.1 kHz.
func flacHeaderOnly(nsamples uint64) []byte {
	const (
		sampleRate = 44100
		channels   = 8
		bitDepth   = 16
	)

	info := make([]byte, 34)
	binary.BigEndian.PutUint16(info[0:], 4096) // min block size
	binary.BigEndian.PutUint16(info[2:], 4096) // max block size
	// Bytes 4..9 hold the min/max frame sizes, left unknown.
	packed := uint64(sampleRate)<<44 | uint64(channels-1)<<41 | uint64(bitDepth-1)<<36 | nsamples&(1<<36-1)
	binary.BigEndian.PutUint64(info[10:], packed)
	// Bytes 18..33 hold the MD5 signature, left zero.

	out := []byte("fLaC")
	out = append(out, 0x80, 0x00, 0x00, byte(len(info))) // last block, STREAMINFO
	return append(out, info...)
}
