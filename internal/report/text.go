package report

import (
	"io"
	"strings"
)

// TextWriter outputs the document lines as-is, each followed by "\n".
type TextWriter struct {
	baseWriter
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer) *TextWriter {
	return &TextWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs doc.Lines.
func (w *TextWriter) Write(doc *Document) (int, error) {
	return w.WriteLines(doc.Lines)
}

// WriteLines outputs lines.
func (w *TextWriter) WriteLines(lines []string) (int, error) {
	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return w.writeString(sb.String())
}
