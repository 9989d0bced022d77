package engine

import "time"

// TermObserver receives timing information from a run. Implementations
// must be safe for concurrent use; they are called from every worker.
type TermObserver interface {
	// ObserveTerm is called after a term has been computed.
	ObserveTerm(compute time.Duration)
	// ObserveFold is called after a term has been added to the sum, with the
	// time spent waiting for the accumulator lock.
	ObserveFold(wait time.Duration)
}

// NopObserver discards every observation.
type NopObserver struct{}

func (NopObserver) ObserveTerm(time.Duration) {}
func (NopObserver) ObserveFold(time.Duration) {}

// MultiObserver forwards observations to several observers.
type MultiObserver []TermObserver

// ObserveTerm implements TermObserver.
func (m MultiObserver) ObserveTerm(d time.Duration) {
	for _, o := range m {
		o.ObserveTerm(d)
	}
}

// ObserveFold implements TermObserver.
func (m MultiObserver) ObserveFold(d time.Duration) {
	for _, o := range m {
		o.ObserveFold(d)
	}
}
