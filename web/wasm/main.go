//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/cwbudde/algo-pitch/internal/webdemo"
	"github.com/cwbudde/algo-pitch/voice"
)

var (
	session *webdemo.Session
	funcs   []js.Func
)

func main() {
	api := js.Global().Get("Object").New()
	api.Set("init", export(func(args []js.Value) any {
		var opts []voice.Option
		if len(args) > 0 && args[0].Type() == js.TypeNumber {
			opts = append(opts, voice.WithAnalysisRate(args[0].Int()))
		}
		s, err := webdemo.NewSession(opts...)
		if err != nil {
			return err.Error()
		}
		session = s
		return js.Null()
	}))

	api.Set("setThreshold", export(func(args []js.Value) any {
		if session == nil || len(args) < 1 {
			return js.Null()
		}
		return session.SetThreshold(args[0].Float())
	}))

	api.Set("threshold", export(func(args []js.Value) any {
		if session == nil {
			return js.Null()
		}
		return session.Threshold()
	}))

	// analyze(samples: Float32Array, sampleRate: number, channels?: number)
	api.Set("analyze", export(func(args []js.Value) any {
		if session == nil || len(args) < 2 {
			return js.Null()
		}
		input := args[0]
		samples := make([]float32, input.Length())
		for i := range samples {
			samples[i] = float32(input.Index(i).Float())
		}
		channels := 1
		if len(args) > 2 {
			channels = args[2].Int()
		}
		res, err := session.AnalyzeSamples(samples, args[1].Float(), channels)
		if err != nil {
			return errorValue(err)
		}
		return js.ValueOf(webdemo.View(res))
	}))

	// analyzeWAV(bytes: Uint8Array)
	api.Set("analyzeWAV", export(func(args []js.Value) any {
		if session == nil || len(args) < 1 {
			return js.Null()
		}
		data := make([]byte, args[0].Length())
		js.CopyBytesToGo(data, args[0])
		res, err := session.AnalyzeWAV(data)
		if err != nil {
			return errorValue(err)
		}
		return js.ValueOf(webdemo.View(res))
	}))

	api.Set("reset", export(func(args []js.Value) any {
		if session != nil {
			session.Reset()
		}
		return js.Null()
	}))

	js.Global().Set("VoicePitchDemo", api)
	select {}
}

func errorValue(err error) js.Value {
	return js.ValueOf(map[string]any{"error": err.Error()})
}

func export(fn func([]js.Value) any) js.Func {
	f := js.FuncOf(func(_ js.Value, args []js.Value) any {
		return fn(args)
	})
	funcs = append(funcs, f)
	return f
}
