package testutil

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	wavFormatPCM   = 1
	wavFormatFloat = 3
)

// EncodeWAV encodes interleaved samples in [-1, 1] as an integer PCM WAVE
// file and returns its bytes. bitDepth must be 8, 16, 24 or 32.
func EncodeWAV(t *testing.T, samples []float64, sampleRate, channels, bitDepth int) []byte {
	t.Helper()

	data := make([]int, len(samples))
	full := math.Ldexp(1, bitDepth-1)
	for i, s := range samples {
		s = math.Max(-1, math.Min(1, s))
		v := math.Round(s * (full - 1))
		if bitDepth == 8 {
			v += 128
		}
		data[i] = int(v)
	}

	return writeWAV(t, data, sampleRate, channels, bitDepth, wavFormatPCM)
}

// EncodeFloatWAV encodes interleaved samples as a 32-bit IEEE float WAVE file.
func EncodeFloatWAV(t *testing.T, samples []float64, sampleRate, channels int) []byte {
	t.Helper()

	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(int32(math.Float32bits(float32(s))))
	}

	return writeWAV(t, data, sampleRate, channels, 32, wavFormatFloat)
}

func writeWAV(t *testing.T, data []int, sampleRate, channels, bitDepth, audioFormat int) []byte {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fixture.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create wav fixture: %v", err)
	}

	enc := wav.NewEncoder(f, sampleRate, bitDepth, channels, audioFormat)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("write wav fixture: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close wav encoder: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close wav fixture: %v", err)
	}

	out, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read wav fixture: %v", err)
	}
	return out
}
