package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-pitch/voice"
)

// fileReport is the printable result for one input file.
type fileReport struct {
	File        string   `json:"file" yaml:"file"`
	Status      string   `json:"status" yaml:"status"`
	Label       string   `json:"label" yaml:"label"`
	MeanPitch   *float64 `json:"mean_pitch_hz" yaml:"mean_pitch_hz"`
	MedianPitch *float64 `json:"median_pitch_hz" yaml:"median_pitch_hz"`
	Threshold   float64  `json:"threshold_hz" yaml:"threshold_hz"`
	Frames      int      `json:"frames" yaml:"frames"`
	Voiced      int      `json:"voiced_frames" yaml:"voiced_frames"`
	RMSdB       *float64 `json:"rms_dbfs" yaml:"rms_dbfs"`
	Message     string   `json:"message" yaml:"message"`
	Error       string   `json:"error,omitempty" yaml:"error,omitempty"`
}

type classifyReport struct {
	Results []fileReport `json:"results" yaml:"results"`
}

func newFileReport(path string, res voice.Result) fileReport {
	return fileReport{
		File:        path,
		Status:      res.Status.String(),
		Label:       res.Label.String(),
		MeanPitch:   optionalHz(res.MeanPitch),
		MedianPitch: optionalHz(res.Summary.Median),
		Threshold:   res.Threshold,
		Frames:      res.Summary.Frames,
		Voiced:      res.Summary.Voiced,
		RMSdB:       optionalHz(res.Level.RMS_dB),
		Message:     res.Message(),
	}
}

func (r classifyReport) writeTable(w io.Writer) error {
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "FILE\tMEAN (Hz)\tVOICED\tTHRESHOLD\tSTATUS\tLABEL")
	for _, fr := range r.Results {
		if fr.Error != "" {
			fmt.Fprintf(tw, "%s\t-\t-\t-\terror\t%s\n", fr.File, dimStyle.Render(fr.Error))
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%d/%d\t%g\t%s\t%s\n",
			fr.File, formatHz(fr.MeanPitch), fr.Voiced, fr.Frames, fr.Threshold, fr.Status, styleLabel(fr.Label))
	}
	return tw.Flush()
}

func newClassifyCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <file>...",
		Short: "Estimate mean pitch and classify each file",
		Long: `Estimate the mean pitch of each file and classify it as male, female or
undetermined against the threshold.

A file without a detectable pitch is not a failure: it is reported as
undetermined. Unreadable or malformed files are reported individually and
make the command exit with an error after all files were processed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.analyzer()
			if err != nil {
				return err
			}

			report, failed := opts.classifyFiles(a, args)
			if err := output(cmd.OutOrStdout(), opts.cfg.Format, report); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files could not be analyzed", failed, len(args))
			}
			return nil
		},
	}
}

func (o *options) classifyFiles(a *voice.Analyzer, paths []string) (classifyReport, int) {
	report := classifyReport{Results: make([]fileReport, 0, len(paths))}
	failed := 0

	for _, path := range paths {
		res, err := o.analyzeFile(a, path)
		if err != nil {
			o.log.Error("analysis failed", "file", path, "error", err)
			report.Results = append(report.Results, fileReport{File: path, Status: "error", Error: err.Error()})
			failed++
			continue
		}

		o.log.Debug("classified", "file", path, "mean_hz", res.MeanPitch, "label", res.Label)
		report.Results = append(report.Results, newFileReport(path, res))
	}

	return report, failed
}
