package pipeline

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of conversions run at the same time
// when no limit is configured.
const DefaultConcurrency = 4

// BatchProcessor converts several input files concurrently.
// Each job runs in a fresh pipeline and owns its own table.
type BatchProcessor struct {
	// pipelineFactory creates a new pipeline for each job.
	pipelineFactory func() *Pipeline

	// concurrency is the maximum number of concurrent conversions.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent conversions.
// Non-positive values are ignored.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor.
func NewBatchProcessor(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     DefaultConcurrency,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatchWithCallback runs every job and calls callback with each
// finished job and its index. The callback is called from the goroutine
// that ran the job, so it must be safe for concurrent use.
//
// A failing conversion does not stop the others; its error is recorded on
// the job's Conversion. Jobs not started before ctx is cancelled are failed
// with the context error and still passed to callback. The returned error
// is non-nil only when ctx was cancelled.
func (bp *BatchProcessor) ProcessBatchWithCallback(
	ctx context.Context,
	jobs []*Job,
	callback func(job *Job, index int),
) error {
	bp.logger.Debug("starting batch conversion",
		"total_files", len(jobs),
		"concurrency", bp.concurrency,
	)
	startTime := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, job := range jobs {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				job.Conversion.Fail(ctx.Err())
				if callback != nil {
					callback(job, i)
				}
				return ctx.Err()
			default:
			}

			if err := bp.pipelineFactory().Execute(ctx, job); err != nil {
				bp.logger.Warn("conversion failed",
					"input", job.Conversion.InputPath,
					"error", err,
				)
			}

			if callback != nil {
				callback(job, i)
			}
			return nil
		})
	}

	err := g.Wait()

	bp.logger.Debug("batch conversion complete",
		"total_files", len(jobs),
		"elapsed", time.Since(startTime),
	)

	return err
}
