// Command voicepitch estimates the mean pitch of voice recordings and
// classifies them against a frequency threshold.
//
// Usage:
//
//	voicepitch [flags] <command> [args]
//
// Commands:
//
//	classify - mean pitch and label for one or more files
//	track    - per-frame pitch track of a single file
//	version  - print the build version
//
// Examples:
//
//	voicepitch classify sample.wav
//	voicepitch classify --threshold 180 --format table *.wav
//	voicepitch track --format json take1.flac | jq '.frames[].f0'
//	voicepitch --config voicepitch.yaml classify memo.mp3
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/algo-pitch/cmd/voicepitch/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
