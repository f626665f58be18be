package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-pitch/voice"
)

// Version is set at build time with -ldflags "-X ...commands.Version=v1.2.3".
var Version = "dev"

// options carries the global flags of one command tree.
type options struct {
	cfgFile      string
	format       string
	threshold    float64
	fmin         float64
	fmax         float64
	analysisRate int
	verbose      bool

	cfg Config
	log *slog.Logger
}

// Execute runs the voicepitch command tree with the process arguments.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds a fresh command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "voicepitch",
		Short: "Voice pitch estimation and threshold classification",
		Long: `voicepitch estimates the mean fundamental frequency (F0) of a voice
recording with the YIN algorithm and labels it male or female against a
threshold (default 165 Hz).

Supported inputs are WAVE (integer PCM or 32-bit float), FLAC and MP3.
Recordings without a detectable pitch are reported as undetermined.

Settings are read from an optional YAML file (--config) and overridden by
flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.init(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "YAML config file")
	flags.StringVar(&opts.format, "format", string(FormatYAML), "output format: yaml, json or table")
	flags.Float64Var(&opts.threshold, "threshold", 0, "classification threshold in Hz, 50-300 (default 165)")
	flags.Float64Var(&opts.fmin, "fmin", 0, "lowest candidate pitch in Hz (default 50)")
	flags.Float64Var(&opts.fmax, "fmax", 0, "highest candidate pitch in Hz (default 500)")
	flags.IntVar(&opts.analysisRate, "analysis-rate", 0, "resample to this rate before analysis, 0 keeps the native rate")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "verbose logging on stderr")

	rootCmd.AddCommand(newClassifyCmd(opts))
	rootCmd.AddCommand(newTrackCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func (o *options) init(cmd *cobra.Command) error {
	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	o.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	cfg := DefaultConfig()
	if o.cfgFile != "" {
		loaded, err := LoadConfig(o.cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded
		o.log.Debug("loaded config", "path", o.cfgFile)
	}

	flags := cmd.Flags()
	if flags.Changed("threshold") {
		cfg.Threshold = o.threshold
	}
	if flags.Changed("fmin") {
		cfg.FMin = o.fmin
	}
	if flags.Changed("fmax") {
		cfg.FMax = o.fmax
	}
	if flags.Changed("analysis-rate") {
		cfg.AnalysisRate = o.analysisRate
	}
	if flags.Changed("format") || cfg.Format == "" {
		cfg.Format = OutputFormat(o.format)
	}

	if err := cfg.Format.Validate(); err != nil {
		return err
	}

	o.cfg = cfg
	return nil
}

func (o *options) analyzer() (*voice.Analyzer, error) {
	a, err := voice.NewAnalyzer(o.cfg.AnalyzerOptions()...)
	if err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return a, nil
}

func (o *options) analyzeFile(a *voice.Analyzer, path string) (voice.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return voice.Result{}, err
	}
	defer f.Close()

	o.log.Debug("analyzing", "file", path, "threshold", a.Threshold())
	return a.AnalyzeReader(f)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			printVersion(cmd.OutOrStdout())
		},
	}
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "voicepitch %s\n", Version)
}
