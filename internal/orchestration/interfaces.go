package orchestration

import (
	"io"
	"math/big"
	"sync"
	"time"

	"github.com/agbru/picalc/internal/progress"
)

// CalculationResult is the outcome of one engine run.
type CalculationResult struct {
	// Name is the engine's display name, e.g. "Dynamic (claim-next)".
	Name string
	// Pi is the computed value. It is nil if Err is set.
	Pi *big.Float
	// Duration is the wall time of the run.
	Duration time.Duration
	// Err is the error that ended the run, if any.
	Err error
}

// PresentationOptions carries the run parameters the presenter prints.
type PresentationOptions struct {
	Iterations uint64
	Precision  uint
	Verbose    bool
}

// ProgressReporter displays progress while engines run.
type ProgressReporter interface {
	// DisplayProgress consumes progressChan until it is closed, then calls
	// wg.Done.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, engines int, out io.Writer)
}

// ProgressReporterFunc adapts a function to ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, engines int, out io.Writer)

// DisplayProgress calls f.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, engines int, out io.Writer) {
	f(wg, progressChan, engines, out)
}

// NullProgressReporter drains progress without output. Used in quiet mode.
type NullProgressReporter struct{}

// DisplayProgress implements ProgressReporter.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter renders results.
type ResultPresenter interface {
	// PresentComparisonTable prints one row per engine.
	PresentComparisonTable(results []CalculationResult, out io.Writer)
	// PresentResult prints the value of a successful run.
	PresentResult(result CalculationResult, opts PresentationOptions, out io.Writer)
}

// ErrorHandler maps a run error to an exit code, printing a message.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
