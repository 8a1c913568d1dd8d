package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nao1215/crawlconv/internal/model"
)

// SimpleWriter outputs human-readable summaries of conversions for
// terminal display.
type SimpleWriter struct {
	baseWriter

	// verbose enables additional detail in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// WriteConversion outputs the data set sizes of one conversion.
func (w *SimpleWriter) WriteConversion(c *model.Conversion) (int, error) {
	var sb strings.Builder

	output := c.OutputPath
	if output == "" || output == "-" {
		output = "standard output"
	}
	sb.WriteString(fmt.Sprintf("%s (%s) -> %s\n", c.InputPath, c.KindName, output))

	if !c.Succeeded() {
		sb.WriteString(fmt.Sprintf("  Status:              ERROR - %s\n", c.ErrorMessage))
		return w.writeString(sb.String())
	}

	sb.WriteString(fmt.Sprintf("  Lines read:          %d\n", c.LinesRead))
	sb.WriteString(fmt.Sprintf("  Blank lines removed: %d\n", c.BlanksRemoved))
	if c.Kind == model.FileKindLinks {
		sb.WriteString(fmt.Sprintf("  Unique links:        %d\n", c.Rows))
	} else {
		sb.WriteString(fmt.Sprintf("  Rows written:        %d\n", c.Rows))
		sb.WriteString(fmt.Sprintf("  Columns:             %d\n", c.Columns))
		sb.WriteString(fmt.Sprintf("  Tiers:               %d (%d unmatched)\n", c.Tiers, c.UnmatchedTiers))
	}
	sb.WriteString(fmt.Sprintf("  Bytes written:       %d\n", c.BytesWritten))

	if w.verbose {
		sb.WriteString(fmt.Sprintf("  Duration:            %s\n", c.Duration.Round(time.Microsecond)))
		if c.InputHash != "" {
			sb.WriteString(fmt.Sprintf("  Input digest:        %s\n", c.InputHash))
		}
		if len(c.PerformedSteps) > 0 {
			sb.WriteString(fmt.Sprintf("  Steps:               %s\n", strings.Join(c.PerformedSteps, ", ")))
		}
	}

	return w.writeString(sb.String())
}

// WriteHistory outputs one line per saved conversion, newest first as
// given.
func (w *SimpleWriter) WriteHistory(conversions []*model.Conversion) (int, error) {
	var sb strings.Builder

	if len(conversions) == 0 {
		sb.WriteString("No conversions recorded.\n")
		return w.writeString(sb.String())
	}

	sb.WriteString(fmt.Sprintf("%-5s %-20s %-8s %-5s %-7s %s\n", "ID", "DATE", "KIND", "FMT", "ROWS", "INPUT"))
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")

	for _, c := range conversions {
		status := ""
		if !c.Succeeded() {
			status = "  [failed]"
		}
		sb.WriteString(fmt.Sprintf("%-5d %-20s %-8s %-5s %-7d %s%s\n",
			c.ID,
			c.StartedAt.Local().Format("2006-01-02 15:04:05"),
			c.KindName,
			c.FormatName,
			c.Rows,
			c.InputPath,
			status,
		))
	}

	return w.writeString(sb.String())
}
