package orchestration

import (
	"time"

	"github.com/agbru/picalc/internal/format"
	"github.com/agbru/picalc/internal/progress"
)

// ProgressAggregator folds per-engine progress into an average and an ETA.
// The CLI spinner and the TUI chart both read from it.
type ProgressAggregator struct {
	state   *format.ProgressWithETA
	engines int
}

// NewProgressAggregator tracks engines concurrent runs. It returns nil when
// engines <= 0.
func NewProgressAggregator(engines int) *ProgressAggregator {
	if engines <= 0 {
		return nil
	}
	return &ProgressAggregator{state: format.NewProgressWithETA(engines), engines: engines}
}

// AggregatedProgress is the view after one update.
type AggregatedProgress struct {
	CalculatorIndex int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// Update applies one update and returns the new average and ETA.
func (a *ProgressAggregator) Update(update progress.ProgressUpdate) AggregatedProgress {
	avg, eta := a.state.UpdateWithETA(update.CalculatorIndex, update.Value)
	return AggregatedProgress{
		CalculatorIndex: update.CalculatorIndex,
		Value:           update.Value,
		AverageProgress: avg,
		ETA:             eta,
	}
}

func (a *ProgressAggregator) CalculateAverage() float64 { return a.state.CalculateAverage() }
func (a *ProgressAggregator) GetETA() time.Duration     { return a.state.GetETA() }
func (a *ProgressAggregator) NumEngines() int           { return a.engines }
func (a *ProgressAggregator) IsMultiEngine() bool       { return a.engines > 1 }

// DrainChannel discards updates until ch is closed.
func DrainChannel(ch <-chan progress.ProgressUpdate) {
	for range ch {
	}
}
