package engine

import (
	"math/big"
	"time"

	"github.com/agbru/picalc/internal/chudnovsky"
	"github.com/agbru/picalc/internal/progress"
)

// Job is the unit of work a Scheduler distributes: compute every term in
// [0, Iterations) and fold it exactly once.
type Job struct {
	Iterations uint64
	Threads    int

	eval     *chudnovsky.Evaluator
	acc      *Accumulator
	observer TermObserver
	counter  *progress.TermCounter
}

func newJob(p Params, eval *chudnovsky.Evaluator, acc *Accumulator, callback progress.ProgressCallback) *Job {
	observer := p.Observer
	if observer == nil {
		observer = NopObserver{}
	}
	return &Job{
		Iterations: p.Iterations,
		Threads:    p.Threads,
		eval:       eval,
		acc:        acc,
		observer:   observer,
		counter:    progress.NewTermCounter(p.Iterations, callback),
	}
}

// Compute evaluates term k. It touches no shared mutable state.
func (j *Job) Compute(k uint64) *big.Float {
	start := time.Now()
	t := j.eval.Term(k)
	j.observer.ObserveTerm(time.Since(start))
	return t
}

// Fold adds a computed term to the run's accumulator.
func (j *Job) Fold(term *big.Float) {
	j.observer.ObserveFold(j.acc.Add(term))
	j.counter.Add()
}

// Folded returns the number of terms folded so far.
func (j *Job) Folded() uint64 { return j.acc.Count() }
