// Package parallel holds small concurrency primitives shared by the engine
// schedulers: a first-error collector and a claim-next index dispenser.
package parallel
