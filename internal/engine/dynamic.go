package engine

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/picalc/internal/parallel"
)

// DynamicScheduler starts Threads workers that each repeatedly claim the
// next unclaimed index from a shared atomic counter, compute its term and
// fold it. Workers that finish early simply claim more.
type DynamicScheduler struct{}

// Name returns the scheduler's name.
func (DynamicScheduler) Name() string { return "Dynamic (claim-next)" }

// Accumulate implements Scheduler.
func (DynamicScheduler) Accumulate(ctx context.Context, job *Job) error {
	indices := parallel.NewIndexDispenser(job.Iterations)
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < job.Threads; w++ {
		g.Go(func() error {
			for {
				if err := ctx.Err(); err != nil {
					return err
				}
				k, ok := indices.Claim()
				if !ok {
					return nil
				}
				job.Fold(job.Compute(k))
			}
		})
	}
	return g.Wait()
}
