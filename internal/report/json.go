package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/crawlconv/internal/model"
	"github.com/nao1215/crawlconv/internal/occurrence"
)

// JSONWriter outputs the crawl table or the occurrence table as JSON.
type JSONWriter struct {
	baseWriter

	// filler is the text of filler cells.
	filler string

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, filler string, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
		filler:     filler,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// TableJSON is the JSON form of a crawl table.
type TableJSON struct {
	// Columns is the width of the table.
	Columns int `json:"columns"`

	// Rows holds the cell texts, filler cells included.
	Rows [][]string `json:"rows"`
}

// Write outputs doc in JSON format.
func (w *JSONWriter) Write(doc *Document) (int, error) {
	if doc.Kind == model.FileKindLinks {
		entries := doc.Occurrences
		if entries == nil {
			entries = []occurrence.Entry{}
		}
		return w.writeJSON(entries)
	}

	v := TableJSON{Rows: [][]string{}}
	if doc.Table != nil {
		v.Columns = doc.Table.Width()
		if rows := paddedMatrix(doc.Table, w.filler); rows != nil {
			v.Rows = rows
		}
	}
	return w.writeJSON(v)
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	data = append(data, '\n')

	return w.output.Write(data)
}
