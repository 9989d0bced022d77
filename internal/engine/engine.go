package engine

import (
	"context"
	"fmt"
	"math/big"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/picalc/internal/chudnovsky"
	apperrors "github.com/agbru/picalc/internal/errors"
	"github.com/agbru/picalc/internal/progress"
)

const tracerName = "github.com/agbru/picalc/internal/engine"

// Engine computes π from run parameters. Implementations are safe for
// concurrent use; each call to Calculate is an independent run.
type Engine interface {
	// Calculate runs the reduction and returns π at p.Precision. Progress
	// updates tagged with calcIndex are sent to progressChan without
	// blocking; progressChan may be nil.
	Calculate(ctx context.Context, progressChan chan<- progress.ProgressUpdate, calcIndex int, p Params) (*big.Float, error)
	// Name returns a human-readable description of the engine.
	Name() string
}

// Scheduler distributes the terms of a Job over workers. Accumulate must
// return only after every worker it started has returned. On success every
// term has been folded exactly once.
type Scheduler interface {
	Name() string
	Accumulate(ctx context.Context, job *Job) error
}

// Reducer is the Engine built around a Scheduler. It validates parameters,
// prepares the evaluator and accumulator, enforces the barrier and applies
// the final transform.
type Reducer struct {
	core   Scheduler
	logger zerolog.Logger
}

// NewReducer wraps a Scheduler into an Engine.
func NewReducer(core Scheduler) *Reducer {
	return &Reducer{core: core, logger: zerolog.Nop()}
}

// SetLogger configures debug logging of run boundaries.
func (r *Reducer) SetLogger(l zerolog.Logger) { r.logger = l }

// Name returns the scheduler's name.
func (r *Reducer) Name() string { return r.core.Name() }

// Calculate implements Engine.
func (r *Reducer) Calculate(ctx context.Context, progressChan chan<- progress.ProgressUpdate, calcIndex int, p Params) (*big.Float, error) {
	subject := progress.NewProgressSubject()
	if progressChan != nil {
		subject.Register(progress.NewChannelObserver(progressChan))
	}
	return r.CalculateWithObservers(ctx, subject, calcIndex, p)
}

// CalculateWithObservers is Calculate with an explicit progress subject.
func (r *Reducer) CalculateWithObservers(ctx context.Context, subject *progress.ProgressSubject, calcIndex int, p Params) (*big.Float, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, apperrors.CalculationError{Cause: err}
	}

	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, "engine.accumulate", trace.WithAttributes(
		attribute.String("scheduler", r.core.Name()),
		attribute.Int("threads", p.Threads),
		attribute.Int64("iterations", int64(p.Iterations)),
		attribute.Int("precision", int(p.Precision)),
	))

	eval := chudnovsky.NewEvaluator(p.Precision, p.Backend)
	acc := NewAccumulator(p.Precision)
	job := newJob(p, eval, acc, subject.Freeze(calcIndex))

	r.logger.Debug().
		Str("scheduler", r.core.Name()).
		Str("backend", eval.Backend().Name()).
		Int("threads", p.Threads).
		Uint64("iterations", p.Iterations).
		Uint("precision", p.Precision).
		Msg("accumulation started")

	err := r.core.Accumulate(ctx, job)
	if err == nil && acc.Count() != p.Iterations {
		err = fmt.Errorf("barrier reached with %d of %d terms folded", acc.Count(), p.Iterations)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "accumulation failed")
		span.End()
		return nil, apperrors.CalculationError{Cause: err}
	}
	span.End()

	_, fspan := tracer.Start(ctx, "engine.finalize")
	pi := Finalize(acc.Sum())
	fspan.End()

	r.logger.Debug().Str("scheduler", r.core.Name()).Uint64("terms", acc.Count()).Msg("accumulation finished")
	return pi, nil
}

// Finalize applies sum ← 12·sum, π ← 1/sum at the precision of sum.
func Finalize(sum *big.Float) *big.Float {
	prec := sum.Prec()
	twelve := new(big.Float).SetPrec(prec).SetInt64(12)
	scaled := new(big.Float).SetPrec(prec).Mul(sum, twelve)
	one := new(big.Float).SetPrec(prec).SetInt64(1)
	return new(big.Float).SetPrec(prec).Quo(one, scaled)
}
