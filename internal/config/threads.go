package config

import "runtime"

// Thread count resolution chain (highest priority first):
//   1. CLI flag or positional argument
//   2. PICALC_THREADS, then the YAML profile
//   3. Cached calibration profile (~/.picalc_calibration.json)
//   4. Hardware estimate (this file)

// DefaultThreads is the flag default: one worker per logical CPU.
func DefaultThreads() int {
	n := runtime.NumCPU()
	if n < 1 {
		return 1
	}
	return n
}

// ApplyAdaptiveThreads refines a default thread count for the run size. A
// user-supplied count is never changed.
func ApplyAdaptiveThreads(cfg AppConfig) AppConfig {
	if cfg.ThreadsSet {
		return cfg
	}
	cfg.Threads = EstimateOptimalThreads(cfg.Iterations)
	return cfg
}

// EstimateOptimalThreads returns a heuristic worker count without running
// benchmarks: one per CPU, but never more workers than terms to compute.
func EstimateOptimalThreads(iterations int64) int {
	n := DefaultThreads()
	if iterations > 0 && int64(n) > iterations {
		return int(iterations)
	}
	return n
}
