package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/agbru/picalc/internal/parallel"
)

// PoolScheduler submits one task per index to an ants pool of Threads
// goroutines. The pool hands tasks to whichever goroutine is free, so the
// distribution is dynamic.
type PoolScheduler struct{}

// Name returns the scheduler's name.
func (PoolScheduler) Name() string { return "Pool (ants)" }

// Accumulate implements Scheduler.
func (PoolScheduler) Accumulate(ctx context.Context, job *Job) error {
	var errs parallel.ErrorCollector
	pool, err := ants.NewPool(job.Threads, ants.WithPanicHandler(func(p interface{}) {
		errs.SetError(fmt.Errorf("term task panicked: %v", p))
	}))
	if err != nil {
		return fmt.Errorf("creating worker pool: %w", err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for k := uint64(0); k < job.Iterations; k++ {
		if err := ctx.Err(); err != nil {
			errs.SetError(err)
			break
		}
		k := k
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			job.Fold(job.Compute(k))
		}); err != nil {
			wg.Done()
			errs.SetError(fmt.Errorf("submitting term %d: %w", k, err))
			break
		}
	}
	wg.Wait()

	if err := errs.Err(); err != nil {
		return err
	}
	return ctx.Err()
}
