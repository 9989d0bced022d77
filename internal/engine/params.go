package engine

import (
	"github.com/agbru/picalc/internal/chudnovsky"
	apperrors "github.com/agbru/picalc/internal/errors"
)

// Params describes one reduction run. Threads, Iterations and Precision are
// fixed for the whole run.
type Params struct {
	// Threads is the number of workers.
	Threads int
	// Iterations is the number of series terms to sum.
	Iterations uint64
	// Precision is the mantissa precision in bits of every float in the run.
	Precision uint
	// Backend computes the exact integer parts of each term. Nil selects
	// math/big.
	Backend chudnovsky.IntBackend
	// Observer receives per-term timings. Nil disables observation.
	Observer TermObserver
}

// Validate reports the first non-positive parameter as a ConfigError.
func (p Params) Validate() error {
	switch {
	case p.Threads < 1:
		return apperrors.NewConfigError("thread count must be at least 1, got %d", p.Threads)
	case p.Iterations < 1:
		return apperrors.NewConfigError("iteration count must be at least 1, got %d", p.Iterations)
	case p.Precision < 1:
		return apperrors.NewConfigError("precision must be at least 1 bit, got %d", p.Precision)
	}
	return nil
}
