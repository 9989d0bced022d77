package calibration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/agbru/picalc/internal/chudnovsky"
	"github.com/agbru/picalc/internal/engine"
	apperrors "github.com/agbru/picalc/internal/errors"
	"github.com/agbru/picalc/internal/orchestration"
	"github.com/agbru/picalc/internal/progress"
)

// Calibration workload. Large enough that worker start-up is amortized, small
// enough to finish in seconds on a laptop.
const (
	DefaultCalibrationIterations = 400
	DefaultCalibrationPrecision  = 1 << 14
)

// Options configures a calibration run.
type Options struct {
	// Engine runs every candidate. It must not be nil.
	Engine engine.Engine
	// Iterations and Precision size the benchmark; zero selects the defaults.
	Iterations uint64
	Precision  uint
	Backend    chudnovsky.IntBackend
	// Candidates lists the worker counts to time; nil selects
	// GenerateThreadCandidates.
	Candidates []int
	// ProfilePath is where the result is saved; empty selects the default.
	ProfilePath string
}

func (o Options) withDefaults() Options {
	if o.Iterations == 0 {
		o.Iterations = DefaultCalibrationIterations
	}
	if o.Precision == 0 {
		o.Precision = DefaultCalibrationPrecision
	}
	if len(o.Candidates) == 0 {
		o.Candidates = GenerateThreadCandidates()
	}
	o.ProfilePath = resolvePath(o.ProfilePath)
	return o
}

type calibrationResult struct {
	Threads  int
	Duration time.Duration
	Err      error
}

// measure times one run per candidate, reporting progress of each run through
// reporter. It stops at the first context error.
func measure(ctx context.Context, opts Options, reporter orchestration.ProgressReporter, out io.Writer) ([]calibrationResult, error) {
	results := make([]calibrationResult, 0, len(opts.Candidates))
	for _, threads := range opts.Candidates {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		params := engine.Params{
			Threads:    threads,
			Iterations: opts.Iterations,
			Precision:  opts.Precision,
			Backend:    opts.Backend,
		}
		progressChan := make(chan progress.ProgressUpdate, orchestration.ProgressBufferMultiplier)
		var wg sync.WaitGroup
		wg.Add(1)
		go reporter.DisplayProgress(&wg, progressChan, 1, out)

		start := time.Now()
		_, err := opts.Engine.Calculate(ctx, progressChan, 0, params)
		elapsed := time.Since(start)
		close(progressChan)
		wg.Wait()

		if apperrors.IsContextError(err) {
			return results, err
		}
		results = append(results, calibrationResult{Threads: threads, Duration: elapsed, Err: err})
	}
	return results, nil
}

// bestResult returns the fastest successful candidate, preferring fewer
// threads on ties. ok is false when every candidate failed.
func bestResult(results []calibrationResult) (best calibrationResult, ok bool) {
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		if !ok || r.Duration < best.Duration {
			best, ok = r, true
		}
	}
	return best, ok
}

// RunCalibration benchmarks every candidate worker count, prints a summary
// table and saves the fastest count to the profile.
//
// Parameters:
//   - ctx: Cancels the run between or inside candidates.
//   - out: Destination of the progress display and summary.
//   - opts: Workload and engine; zero fields take defaults.
//   - reporter: Progress display used for each candidate.
//   - colors: Colors for error messages.
//
// Returns:
//   - int: An exit code.
func RunCalibration(ctx context.Context, out io.Writer, opts Options, reporter orchestration.ProgressReporter, colors apperrors.ColorProvider) int {
	if opts.Engine == nil {
		return apperrors.HandleCalculationError(apperrors.NewConfigError("calibration needs an engine"), 0, out, colors)
	}
	opts = opts.withDefaults()
	if reporter == nil {
		reporter = orchestration.NullProgressReporter{}
	}

	fmt.Fprintf(out, "--- Calibration Mode: thread count (%s, %d terms at %d bits) ---\n",
		opts.Engine.Name(), opts.Iterations, opts.Precision)

	start := time.Now()
	results, err := measure(ctx, opts, reporter, out)
	total := time.Since(start)
	if err != nil {
		return apperrors.HandleCalculationError(err, total, out, colors)
	}

	best, ok := bestResult(results)
	printCalibrationResults(out, results, best.Threads, ok)
	if !ok {
		return apperrors.HandleCalculationError(errors.Join(collectErrors(results)...), total, out, colors)
	}

	profile := NewProfile()
	profile.OptimalThreads = best.Threads
	profile.Engine = opts.Engine.Name()
	profile.CalibrationIterations = opts.Iterations
	profile.CalibrationPrecision = opts.Precision
	profile.CalibrationTime = total.Round(time.Millisecond).String()
	if err := profile.SaveProfile(opts.ProfilePath); err != nil {
		saveErr := apperrors.ResourceError{Kind: apperrors.ResourceProfile, Path: opts.ProfilePath, Cause: err}
		return apperrors.HandleCalculationError(saveErr, total, out, colors)
	}
	printCalibrationOutput(out, profile, opts.ProfilePath)
	return apperrors.ExitSuccess
}

func collectErrors(results []calibrationResult) []error {
	errs := make([]error, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("%d threads: %w", r.Threads, r.Err))
		}
	}
	return errs
}
