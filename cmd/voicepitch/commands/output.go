package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-yaml"

	"github.com/cwbudde/algo-pitch/classify"
	"github.com/cwbudde/algo-pitch/dsp/core"
)

// OutputFormat selects how results are printed.
type OutputFormat string

const (
	FormatYAML  OutputFormat = "yaml"
	FormatJSON  OutputFormat = "json"
	FormatTable OutputFormat = "table"
)

// Validate rejects unknown formats.
func (f OutputFormat) Validate() error {
	switch f {
	case FormatYAML, FormatJSON, FormatTable:
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (want yaml, json or table)", f)
	}
}

// tabler is implemented by results with a table rendering.
type tabler interface {
	writeTable(w io.Writer) error
}

// output writes result in the requested format.
func output(w io.Writer, format OutputFormat, result any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case FormatYAML, "":
		data, err := yaml.Marshal(result)
		if err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}
		_, err = w.Write(data)
		return err
	case FormatTable:
		t, ok := result.(tabler)
		if !ok {
			return fmt.Errorf("table output not supported for %T", result)
		}
		return t.writeTable(w)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

var (
	femaleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#d75fd7"))
	maleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5f87ff"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6e7681"))
)

// styleLabel colours a label name. lipgloss drops the colour when stdout is
// not a terminal.
func styleLabel(label string) string {
	switch label {
	case classify.Female.String():
		return femaleStyle.Render(label)
	case classify.Male.String():
		return maleStyle.Render(label)
	default:
		return dimStyle.Render(label)
	}
}

// optionalHz returns nil for NaN or infinite values so that JSON output
// stays encodable.
func optionalHz(v float64) *float64 {
	if !core.IsFinite(v) {
		return nil
	}
	return &v
}

func formatHz(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *v)
}
