package engine

import (
	"math/big"
	"sync"
	"time"
)

// Accumulator is the running sum of a run. It starts at zero and is only
// mutated by Add, under its mutex.
type Accumulator struct {
	mu    sync.Mutex
	sum   *big.Float
	count uint64
}

// NewAccumulator returns a zero sum at the given precision.
func NewAccumulator(prec uint) *Accumulator {
	return &Accumulator{sum: new(big.Float).SetPrec(prec)}
}

// Add folds term into the sum and returns how long the caller waited for the
// lock. term is only read.
func (a *Accumulator) Add(term *big.Float) time.Duration {
	start := time.Now()
	a.mu.Lock()
	wait := time.Since(start)
	a.sum.Add(a.sum, term)
	a.count++
	a.mu.Unlock()
	return wait
}

// Sum returns a copy of the current sum.
func (a *Accumulator) Sum() *big.Float {
	a.mu.Lock()
	defer a.mu.Unlock()
	return new(big.Float).Copy(a.sum)
}

// Count returns the number of terms folded so far.
func (a *Accumulator) Count() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.count
}
