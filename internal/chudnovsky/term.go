package chudnovsky

import "math/big"

// Evaluator computes Chudnovsky series terms at a fixed binary precision.
//
// The reciprocal square root of C is computed once at construction and only
// read afterwards, so a single Evaluator may be shared by any number of
// goroutines.
type Evaluator struct {
	prec     uint
	invSqrtC *big.Float
	backend  IntBackend
}

// NewEvaluator returns an Evaluator for the given precision in bits. A nil
// backend selects BigBackend. It panics if prec is zero.
func NewEvaluator(prec uint, backend IntBackend) *Evaluator {
	if prec == 0 {
		panic("chudnovsky: precision must be positive")
	}
	if backend == nil {
		backend = BigBackend{}
	}
	return &Evaluator{
		prec:     prec,
		invSqrtC: InvSqrtC(prec),
		backend:  backend,
	}
}

// Precision returns the mantissa precision of every value the evaluator
// produces.
func (e *Evaluator) Precision() uint { return e.prec }

// Backend returns the integer backend in use.
func (e *Evaluator) Backend() IntBackend { return e.backend }

// Term returns
//
//	(-1)^k (6k)! (545140134k + 13591409)
//	-------------------------------------------------
//	(3k)! (k!)^3 (640320^3)^k · 640320 · sqrt(640320)
//
// rounded to the evaluator precision. The returned value is newly allocated
// and owned by the caller.
func (e *Evaluator) Term(k uint64) *big.Float {
	num, den := e.backend.TermParts(k)

	n := new(big.Float).SetPrec(e.prec).SetInt(num)
	d := new(big.Float).SetPrec(e.prec).SetInt(den)
	t := new(big.Float).SetPrec(e.prec).Quo(n, d)
	return t.Mul(t, e.invSqrtC)
}

// Term computes a single term with the default backend. Callers evaluating
// many terms at the same precision should build an Evaluator instead.
func Term(prec uint, k uint64) *big.Float {
	return NewEvaluator(prec, nil).Term(k)
}

// InvSqrtC returns 1/sqrt(640320) at the given precision.
func InvSqrtC(prec uint) *big.Float {
	s := new(big.Float).SetPrec(prec).SetInt64(C)
	s.Sqrt(s)
	one := new(big.Float).SetPrec(prec).SetInt64(1)
	return new(big.Float).SetPrec(prec).Quo(one, s)
}
