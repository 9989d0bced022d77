// Package engine sums the Chudnovsky series in parallel and turns the sum
// into π.
//
// A run distributes the term indices 0..Iterations-1 over a fixed set of
// workers with dynamic, claim-next scheduling. Workers compute terms without
// sharing anything but a read-only chudnovsky.Evaluator and fold each term
// into a single Accumulator whose lock covers only the addition. Once every
// worker has returned and every term has been folded, the sum is multiplied by
// 12 and inverted on the calling goroutine.
//
// Three Schedulers implement the distribution:
//
//	dynamic  workers claim indices from an atomic counter (default)
//	queue    a producer feeds a work queue; one reducer goroutine folds
//	pool     each index is a task on a bounded ants goroutine pool
//
// Fold order differs between runs and schedulers, so results agree to within
// Tolerance rather than bit for bit.
package engine
