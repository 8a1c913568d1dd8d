package pipeline

import (
	"path/filepath"

	"github.com/nao1215/crawlconv/internal/model"
	"github.com/nao1215/crawlconv/internal/occurrence"
	"github.com/nao1215/crawlconv/internal/report"
	"github.com/nao1215/crawlconv/internal/table"
)

// Job is the state of one file conversion as it moves through the steps.
type Job struct {
	// Conversion is the summary that is shown to the user and saved to
	// the history database.
	Conversion *model.Conversion

	// Lines are the input lines, cleaned once the clean step ran.
	Lines []string

	// Table is the crawl table. Set by the build step.
	Table *table.Table

	// Occurrences are the unique links. Set by the count step.
	Occurrences []occurrence.Entry
}

// NewJob creates a Job that converts inputPath into outputPath.
func NewJob(inputPath, outputPath string, kind model.FileKind, format model.Format) *Job {
	c := model.NewConversion(inputPath, kind, format)
	c.OutputPath = outputPath
	return &Job{Conversion: c}
}

// Document returns the content handed to a report.Writer.
func (j *Job) Document() *report.Document {
	return &report.Document{
		Title:       filepath.Base(j.Conversion.InputPath),
		Kind:        j.Conversion.Kind,
		Lines:       j.Lines,
		Table:       j.Table,
		Occurrences: j.Occurrences,
	}
}
