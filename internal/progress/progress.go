// Package progress carries progress reports from the reduction engines to
// whichever front end is displaying them.
package progress

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// ProgressUpdate is sent over a channel from an engine run to the user
// interface.
type ProgressUpdate struct {
	// CalculatorIndex identifies the run when several engines are compared.
	CalculatorIndex int
	// Value is the fraction of series terms folded, in [0, 1].
	Value float64
}

// ProgressCallback receives a normalized progress value.
type ProgressCallback func(progress float64)

// ProgressObserver is notified as a run advances.
type ProgressObserver interface {
	Update(calcIndex int, progress float64)
}

// ChannelObserver forwards updates to a channel without ever blocking the
// sender. Updates are dropped when the consumer falls behind.
type ChannelObserver struct {
	ch chan<- ProgressUpdate
}

// NewChannelObserver wraps ch. A nil channel yields an observer that discards
// every update.
func NewChannelObserver(ch chan<- ProgressUpdate) *ChannelObserver {
	return &ChannelObserver{ch: ch}
}

// Update implements ProgressObserver.
func (o *ChannelObserver) Update(calcIndex int, progress float64) {
	if o.ch == nil {
		return
	}
	select {
	case o.ch <- ProgressUpdate{CalculatorIndex: calcIndex, Value: progress}:
	default:
	}
}

// LoggingObserver writes progress to a zerolog logger, at most once per
// interval.
type LoggingObserver struct {
	logger   zerolog.Logger
	interval time.Duration

	mu   sync.Mutex
	last time.Time
}

// NewLoggingObserver returns an observer that logs at debug level.
func NewLoggingObserver(logger zerolog.Logger, interval time.Duration) *LoggingObserver {
	return &LoggingObserver{logger: logger, interval: interval}
}

// Update implements ProgressObserver.
func (o *LoggingObserver) Update(calcIndex int, progress float64) {
	o.mu.Lock()
	now := time.Now()
	if progress < 1 && now.Sub(o.last) < o.interval {
		o.mu.Unlock()
		return
	}
	o.last = now
	o.mu.Unlock()
	o.logger.Debug().Int("calculator", calcIndex).Float64("progress", progress).Msg("progress")
}

// NoOpObserver ignores every update.
type NoOpObserver struct{}

// NewNoOpObserver returns a NoOpObserver.
func NewNoOpObserver() NoOpObserver { return NoOpObserver{} }

// Update implements ProgressObserver.
func (NoOpObserver) Update(int, float64) {}

// ProgressSubject fans updates out to several observers.
type ProgressSubject struct {
	mu        sync.RWMutex
	observers []ProgressObserver
}

// NewProgressSubject returns an empty subject.
func NewProgressSubject() *ProgressSubject { return &ProgressSubject{} }

// Register adds an observer.
func (s *ProgressSubject) Register(o ProgressObserver) {
	s.mu.Lock()
	s.observers = append(s.observers, o)
	s.mu.Unlock()
}

// Notify sends the update to every registered observer.
func (s *ProgressSubject) Notify(calcIndex int, progress float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.observers {
		o.Update(calcIndex, progress)
	}
}

// Freeze snapshots the current observers and returns a callback bound to
// calcIndex. Observers registered later are not notified by it, and the
// callback takes no lock.
func (s *ProgressSubject) Freeze(calcIndex int) ProgressCallback {
	s.mu.RLock()
	snapshot := make([]ProgressObserver, len(s.observers))
	copy(snapshot, s.observers)
	s.mu.RUnlock()
	return func(progress float64) {
		for _, o := range snapshot {
			o.Update(calcIndex, progress)
		}
	}
}

// ReportSteps is the number of distinct progress values a TermCounter emits
// over a full run.
const ReportSteps = 100

// TermCounter counts folded terms and invokes a callback each time the
// completed fraction crosses another 1/ReportSteps boundary, plus once at
// completion. It is safe for concurrent use.
type TermCounter struct {
	total    uint64
	done     atomic.Uint64
	step     uint64
	callback ProgressCallback
}

// NewTermCounter returns a counter for total terms. A nil callback is allowed.
func NewTermCounter(total uint64, callback ProgressCallback) *TermCounter {
	step := total / ReportSteps
	if step == 0 {
		step = 1
	}
	return &TermCounter{total: total, step: step, callback: callback}
}

// Add records one folded term and returns the running count.
func (c *TermCounter) Add() uint64 {
	n := c.done.Add(1)
	if c.callback != nil && (n%c.step == 0 || n == c.total) {
		c.callback(float64(n) / float64(c.total))
	}
	return n
}

// Done returns the number of terms recorded so far.
func (c *TermCounter) Done() uint64 { return c.done.Load() }
