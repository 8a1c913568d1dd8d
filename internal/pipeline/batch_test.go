package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nao1215/crawlconv/internal/model"
)

func newTestJobs(n int) []*Job {
	jobs := make([]*Job, n)
	for i := range jobs {
		jobs[i] = NewJob(fmt.Sprintf("in%d.txt", i), fmt.Sprintf("out%d.csv", i), model.FileKindLinks, model.FormatCSV)
	}
	return jobs
}

func TestBatchProcessorNew(t *testing.T) {
	t.Parallel()

	t.Run("creates processor with defaults", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(func() *Pipeline { return New() })
		if bp.concurrency != DefaultConcurrency {
			t.Errorf("expected default concurrency %d, got %d", DefaultConcurrency, bp.concurrency)
		}
	})

	t.Run("ignores non-positive concurrency", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(func() *Pipeline { return New() }, WithConcurrency(0))
		if bp.concurrency != DefaultConcurrency {
			t.Errorf("expected concurrency %d, got %d", DefaultConcurrency, bp.concurrency)
		}
	})
}

func TestBatchProcessorProcessBatchWithCallback(t *testing.T) {
	t.Parallel()

	t.Run("runs every job and keeps order", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(func() *Pipeline {
			p := New()
			p.AddStep(&mockStep{name: "count", doFunc: func(_ context.Context, job *Job) error {
				job.Conversion.Rows = len(job.Conversion.InputPath)
				return nil
			}})
			return p
		}, WithConcurrency(2))

		jobs := newTestJobs(5)
		if err := bp.ProcessBatchWithCallback(context.Background(), jobs, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i, job := range jobs {
			if job.Conversion.InputPath != fmt.Sprintf("in%d.txt", i) {
				t.Errorf("job %d out of order: %s", i, job.Conversion.InputPath)
			}
			if job.Conversion.Rows == 0 {
				t.Errorf("job %d did not run", i)
			}
		}
	})

	t.Run("failed job does not stop the others", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(func() *Pipeline {
			p := New()
			p.AddStep(&mockStep{name: "read", doFunc: func(_ context.Context, job *Job) error {
				if job.Conversion.InputPath == "in1.txt" {
					return model.ErrInputUnreadable
				}
				return nil
			}})
			return p
		})

		jobs := newTestJobs(3)
		if err := bp.ProcessBatchWithCallback(context.Background(), jobs, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if jobs[1].Conversion.Succeeded() {
			t.Error("expected job 1 to fail")
		}
		if !jobs[0].Conversion.Succeeded() || !jobs[2].Conversion.Succeeded() {
			t.Error("expected other jobs to succeed")
		}
	})

	t.Run("respects the concurrency limit", func(t *testing.T) {
		t.Parallel()

		var running, peak atomic.Int32
		bp := NewBatchProcessor(func() *Pipeline {
			p := New()
			p.AddStep(&mockStep{name: "slow", doFunc: func(context.Context, *Job) error {
				n := running.Add(1)
				for {
					old := peak.Load()
					if n <= old || peak.CompareAndSwap(old, n) {
						break
					}
				}
				time.Sleep(10 * time.Millisecond)
				running.Add(-1)
				return nil
			}})
			return p
		}, WithConcurrency(2))

		if err := bp.ProcessBatchWithCallback(context.Background(), newTestJobs(6), nil); err != nil {
			t.Fatal(err)
		}
		if peak.Load() > 2 {
			t.Errorf("expected at most 2 concurrent jobs, got %d", peak.Load())
		}
	})

	t.Run("cancelled context is reported", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		bp := NewBatchProcessor(func() *Pipeline { return New() })
		jobs := newTestJobs(2)
		err := bp.ProcessBatchWithCallback(ctx, jobs, nil)
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
		for _, job := range jobs {
			if job.Conversion.Succeeded() {
				t.Error("expected cancelled jobs to be failed")
			}
		}
	})

	t.Run("cancelled jobs are still passed to the callback", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		bp := NewBatchProcessor(func() *Pipeline { return New() })
		var mu sync.Mutex
		var failed []int
		err := bp.ProcessBatchWithCallback(ctx, newTestJobs(3), func(job *Job, index int) {
			mu.Lock()
			defer mu.Unlock()
			if !errors.Is(job.Conversion.Error, context.Canceled) {
				t.Errorf("job %d: expected context.Canceled, got %v", index, job.Conversion.Error)
			}
			failed = append(failed, index)
		})
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
		if len(failed) != 3 {
			t.Errorf("expected 3 callbacks, got %d", len(failed))
		}
	})
}

func TestBatchProcessorCallback(t *testing.T) {
	t.Parallel()

	bp := NewBatchProcessor(func() *Pipeline { return New() })

	var mu sync.Mutex
	seen := make(map[int]string)
	err := bp.ProcessBatchWithCallback(context.Background(), newTestJobs(4), func(job *Job, index int) {
		mu.Lock()
		defer mu.Unlock()
		seen[index] = job.Conversion.InputPath
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seen) != 4 {
		t.Fatalf("expected 4 callbacks, got %d", len(seen))
	}
	for i, path := range seen {
		if path != fmt.Sprintf("in%d.txt", i) {
			t.Errorf("callback index %d got %s", i, path)
		}
	}
}
