package tui

import (
	"time"

	"github.com/agbru/picalc/internal/memory"
	"github.com/agbru/picalc/internal/orchestration"
	"github.com/agbru/picalc/internal/verify"
)

// ProgressMsg carries one aggregated progress update.
type ProgressMsg struct {
	CalculatorIndex int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// ProgressDoneMsg is sent when the progress channel is closed.
type ProgressDoneMsg struct{}

// ComparisonResultsMsg carries the per-engine results of a multi-engine run.
type ComparisonResultsMsg struct {
	Results []orchestration.CalculationResult
}

// FinalResultMsg carries the rendered digits of the retained result.
type FinalResultMsg struct {
	Result orchestration.CalculationResult
	Digits string
	// SavedTo is the output file the digits were written to, if any.
	SavedTo string
	SaveErr error
}

// AccuracyMsg carries the outcome of the reference comparison.
type AccuracyMsg struct {
	Report verify.Report
}

// ErrorMsg reports a failed run.
type ErrorMsg struct {
	Err      error
	Duration time.Duration
}

// TickMsg drives periodic sampling.
type TickMsg time.Time

// MemStatsMsg carries a runtime memory snapshot.
type MemStatsMsg struct {
	memory.Snapshot
	NumGoroutine int
}

// SysStatsMsg carries system-wide CPU and memory usage in percent.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}

// CalculationCompleteMsg is sent once the orchestration returns.
type CalculationCompleteMsg struct {
	ExitCode   int
	Generation uint64
}

// ContextCancelledMsg is sent when the run context ends.
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}
