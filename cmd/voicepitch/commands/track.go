package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-pitch/audio/decode"
	"github.com/cwbudde/algo-pitch/dsp/pitch"
)

type trackFrame struct {
	Time         float64  `json:"time_s" yaml:"time_s"`
	F0           *float64 `json:"f0_hz" yaml:"f0_hz"`
	Aperiodicity *float64 `json:"aperiodicity" yaml:"aperiodicity"`
}

type trackReport struct {
	File        string       `json:"file" yaml:"file"`
	SampleRate  int          `json:"sample_rate" yaml:"sample_rate"`
	FrameLength int          `json:"frame_length" yaml:"frame_length"`
	HopLength   int          `json:"hop_length" yaml:"hop_length"`
	MeanPitch   *float64     `json:"mean_pitch_hz" yaml:"mean_pitch_hz"`
	Voiced      int          `json:"voiced_frames" yaml:"voiced_frames"`
	Frames      []trackFrame `json:"frames" yaml:"frames"`
}

func newTrackReport(path string, t pitch.Track) trackReport {
	r := trackReport{
		File:        path,
		SampleRate:  t.SampleRate,
		FrameLength: t.FrameLength,
		HopLength:   t.HopLength,
		MeanPitch:   optionalHz(t.Mean()),
		Voiced:      t.Voiced(),
		Frames:      make([]trackFrame, t.Len()),
	}
	for i := range r.Frames {
		r.Frames[i] = trackFrame{
			Time:         t.Times[i],
			F0:           optionalHz(t.F0[i]),
			Aperiodicity: optionalHz(t.Aperiodicity[i]),
		}
	}
	return r
}

func (r trackReport) writeTable(w io.Writer) error {
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "TIME (s)\tF0 (Hz)\tAPERIODICITY")
	for _, f := range r.Frames {
		ap := "-"
		if f.Aperiodicity != nil {
			ap = fmt.Sprintf("%.3f", *f.Aperiodicity)
		}
		fmt.Fprintf(tw, "%.3f\t%s\t%s\n", f.Time, formatHz(f.F0), ap)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s: %d/%d voiced frames, mean %s Hz\n",
		r.File, r.Voiced, len(r.Frames), formatHz(r.MeanPitch))
	return err
}

func newTrackCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "track <file>",
		Short: "Print the per-frame pitch track of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.analyzer()
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			buf, err := decode.Decode(f)
			if err != nil {
				return err
			}
			opts.log.Debug("decoded", "file", args[0], "rate", buf.SampleRate,
				"channels", buf.NumChannels(), "duration", buf.Duration())

			t, err := a.Track(buf)
			if err != nil {
				return err
			}

			return output(cmd.OutOrStdout(), opts.cfg.Format, newTrackReport(args[0], t))
		},
	}
}
