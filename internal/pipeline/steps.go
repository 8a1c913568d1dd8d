package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nao1215/crawlconv/internal/config"
	"github.com/nao1215/crawlconv/internal/crawllog"
	"github.com/nao1215/crawlconv/internal/model"
	"github.com/nao1215/crawlconv/internal/occurrence"
	"github.com/nao1215/crawlconv/internal/report"
	"github.com/nao1215/crawlconv/internal/table"
)

// ReadStep loads the input file into the job.
type ReadStep struct{}

// NewReadStep creates a read step.
func NewReadStep() *ReadStep {
	return &ReadStep{}
}

// Name returns the step name.
func (s *ReadStep) Name() string {
	return "read"
}

// Do reads job.Conversion.InputPath.
func (s *ReadStep) Do(_ context.Context, job *Job) error {
	in, err := crawllog.ReadFile(job.Conversion.InputPath)
	if err != nil {
		return err
	}

	job.Lines = in.Lines
	job.Conversion.LinesRead = len(in.Lines)
	job.Conversion.InputHash = in.Digest
	return nil
}

// CleanStep drops blank lines.
type CleanStep struct {
	logger *slog.Logger
}

// NewCleanStep creates a clean step.
func NewCleanStep(logger *slog.Logger) *CleanStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &CleanStep{logger: logger}
}

// Name returns the step name.
func (s *CleanStep) Name() string {
	return "clean"
}

// Do removes blank lines from job.Lines.
func (s *CleanStep) Do(_ context.Context, job *Job) error {
	lines, removed := crawllog.RemoveBlanks(job.Lines)
	job.Lines = lines
	job.Conversion.BlanksRemoved = removed

	s.logger.Debug("blank lines removed",
		"input", job.Conversion.InputPath,
		"count", removed,
	)
	return nil
}

// BuildStep reconstructs the crawl table.
type BuildStep struct {
	logger *slog.Logger
}

// NewBuildStep creates a build step.
func NewBuildStep(logger *slog.Logger) *BuildStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &BuildStep{logger: logger}
}

// Name returns the step name.
func (s *BuildStep) Name() string {
	return "build"
}

// Do builds job.Table from job.Lines.
func (s *BuildStep) Do(_ context.Context, job *Job) error {
	b := table.NewBuilder(table.WithLogger(s.logger.With("input", job.Conversion.InputPath)))
	t, err := b.Build(job.Lines)
	if err != nil {
		return fmt.Errorf("%s: %w", job.Conversion.InputPath, err)
	}

	stats := b.Stats()
	job.Table = t
	job.Conversion.Tiers = stats.Tiers
	job.Conversion.UnmatchedTiers = stats.UnmatchedTiers

	if stats.ShortTiers > 0 || stats.IgnoredLines > 0 {
		s.logger.Debug("crawl log did not match its tier counts",
			"input", job.Conversion.InputPath,
			"short_tiers", stats.ShortTiers,
			"ignored_lines", stats.IgnoredLines,
		)
	}
	return nil
}

// PadStep makes the crawl table rectangular.
type PadStep struct{}

// NewPadStep creates a pad step.
func NewPadStep() *PadStep {
	return &PadStep{}
}

// Name returns the step name.
func (s *PadStep) Name() string {
	return "pad"
}

// Do pads job.Table.
func (s *PadStep) Do(_ context.Context, job *Job) error {
	if job.Table == nil {
		return nil
	}

	table.Pad(job.Table)
	job.Conversion.Rows = job.Table.Len()
	job.Conversion.Columns = job.Table.Width()
	return nil
}

// CountStep counts link occurrences.
type CountStep struct{}

// NewCountStep creates a count step.
func NewCountStep() *CountStep {
	return &CountStep{}
}

// Name returns the step name.
func (s *CountStep) Name() string {
	return "count"
}

// Do fills job.Occurrences from job.Lines.
func (s *CountStep) Do(_ context.Context, job *Job) error {
	job.Occurrences = occurrence.Count(job.Lines)
	job.Conversion.Rows = len(job.Occurrences)
	return nil
}

// EmitStep writes the job in its output format.
type EmitStep struct {
	// opts are passed to the report writer.
	opts report.Options

	// stdout receives output when the output path is config.StdoutPath.
	stdout io.Writer
}

// NewEmitStep creates an emit step.
func NewEmitStep(opts report.Options, stdout io.Writer) *EmitStep {
	if stdout == nil {
		stdout = os.Stdout
	}
	return &EmitStep{opts: opts, stdout: stdout}
}

// Name returns the step name.
func (s *EmitStep) Name() string {
	return "emit"
}

// Do writes the job to job.Conversion.OutputPath.
// The file is created right before writing and closed afterwards; failures
// wrap model.ErrOutputUnwritable.
func (s *EmitStep) Do(_ context.Context, job *Job) (err error) {
	c := job.Conversion

	out := s.stdout
	if c.OutputPath != config.StdoutPath {
		if dir := filepath.Dir(c.OutputPath); dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return fmt.Errorf("%w: %w", model.ErrOutputUnwritable, err)
			}
		}
		f, err := os.Create(c.OutputPath) //nolint:gosec // User-provided output path is intentional
		if err != nil {
			return fmt.Errorf("%w: %w", model.ErrOutputUnwritable, err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("%w: %w", model.ErrOutputUnwritable, cerr)
			}
		}()
		out = f
	}

	w, err := report.ForFormat(c.Format, out, s.opts)
	if err != nil {
		return err
	}

	n, err := w.Write(job.Document())
	c.BytesWritten = n
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrOutputUnwritable, err)
	}
	return nil
}

// needsTable reports whether format writes the crawl or occurrence table
// rather than the raw lines.
func needsTable(format model.Format) bool {
	switch format {
	case model.FormatCSV, model.FormatMarkdown, model.FormatJSON:
		return true
	default:
		return false
	}
}

// NewConversionPipeline returns the pipeline for one file of cfg.Kind
// converted to cfg.Format.
//
// Crawled files run read, clean, build, pad and emit. Duplicates and
// to-crawl files run read, clean, count and emit. The clean step is left
// out when cfg.KeepBlanks is set, and the table steps are left out for
// formats that write the lines as-is.
func NewConversionPipeline(cfg *config.Config, stdout io.Writer, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}

	p := New(WithLogger(logger))
	p.AddStep(NewReadStep())
	if !cfg.KeepBlanks {
		p.AddStep(NewCleanStep(logger))
	}

	if needsTable(cfg.Format) {
		if cfg.Kind == model.FileKindLinks {
			p.AddStep(NewCountStep())
		} else {
			p.AddSteps(NewBuildStep(logger), NewPadStep())
		}
	}

	p.AddStep(NewEmitStep(report.Options{
		Filler:      cfg.Filler,
		PrettyPrint: cfg.PrettyPrint,
	}, stdout))

	return p
}
