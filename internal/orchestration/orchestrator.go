package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/picalc/internal/engine"
	apperrors "github.com/agbru/picalc/internal/errors"
	"github.com/agbru/picalc/internal/progress"
)

// ProgressBufferMultiplier sizes the progress channel per engine so that a
// slow display rarely drops updates.
const ProgressBufferMultiplier = 5

// ExecuteCalculations runs every engine concurrently with the same params
// and returns their results in input order. A failing engine does not stop
// the others.
func ExecuteCalculations(ctx context.Context, engines []engine.Engine, params engine.Params, reporter ProgressReporter, out io.Writer) []CalculationResult {
	results := make([]CalculationResult, len(engines))
	progressChan := make(chan progress.ProgressUpdate, len(engines)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, progressChan, len(engines), out)

	var g errgroup.Group
	for i, e := range engines {
		g.Go(func() error {
			start := time.Now()
			pi, err := e.Calculate(ctx, progressChan, i, params)
			results[i] = CalculationResult{Name: e.Name(), Pi: pi, Duration: time.Since(start), Err: err}
			return nil
		})
	}
	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// AnalyzeComparisonResults sorts results (successes first, then by
// duration), prints the comparison table and checks that every successful
// result agrees with the fastest one to within the fold-order tolerance.
// The returned exit code is ExitErrorMismatch on disagreement.
func AnalyzeComparisonResults(results []CalculationResult, opts PresentationOptions, presenter ResultPresenter, handler ErrorHandler, out io.Writer) int {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var firstValid *CalculationResult
	var firstErr error
	for i := range results {
		switch {
		case results[i].Err != nil:
			if firstErr == nil {
				firstErr = results[i].Err
			}
		case firstValid == nil:
			firstValid = &results[i]
		}
	}

	presenter.PresentComparisonTable(results, out)

	if firstValid == nil {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No engine could complete the calculation.\n")
		return handler.HandleError(firstErr, 0, out)
	}

	if name, bits, ok := findMismatch(results, firstValid, opts); !ok {
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! %s agrees with %s on only %d bits (tolerance %d).\n",
			name, firstValid.Name, bits, engine.Tolerance(opts.Precision, opts.Iterations))
		return apperrors.ExitErrorMismatch
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n")
	presenter.PresentResult(*firstValid, opts, out)
	return apperrors.ExitSuccess
}

func findMismatch(results []CalculationResult, ref *CalculationResult, opts PresentationOptions) (string, int, bool) {
	tol := engine.Tolerance(opts.Precision, opts.Iterations)
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		if bits := engine.MatchingBits(r.Pi, ref.Pi); bits < tol {
			return r.Name, bits, false
		}
	}
	return "", 0, true
}
