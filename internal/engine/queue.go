package engine

import (
	"context"
	"math/big"
	"sync"

	"golang.org/x/sync/errgroup"
)

// QueueScheduler feeds indices through a bounded work queue to Threads
// workers. Computed terms travel over a second channel to a single reducer,
// which is the only goroutine that folds.
type QueueScheduler struct{}

// Name returns the scheduler's name.
func (QueueScheduler) Name() string { return "Queue (single reducer)" }

// Accumulate implements Scheduler.
func (QueueScheduler) Accumulate(ctx context.Context, job *Job) error {
	g, ctx := errgroup.WithContext(ctx)
	indices := make(chan uint64, job.Threads)
	terms := make(chan *big.Float, job.Threads)

	g.Go(func() error {
		defer close(indices)
		for k := uint64(0); k < job.Iterations; k++ {
			select {
			case indices <- k:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	var workers sync.WaitGroup
	workers.Add(job.Threads)
	for w := 0; w < job.Threads; w++ {
		g.Go(func() error {
			defer workers.Done()
			for k := range indices {
				t := job.Compute(k)
				select {
				case terms <- t:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		})
	}
	go func() {
		workers.Wait()
		close(terms)
	}()

	for t := range terms {
		job.Fold(t)
	}
	return g.Wait()
}
