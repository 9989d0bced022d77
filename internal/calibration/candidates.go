package calibration

import "runtime"

// GenerateThreadCandidates returns the worker counts to benchmark for the
// current CPU count: powers of two up to twice the logical CPUs, plus the
// CPU count itself.
//
//   - 1 CPU: 1 and 2 (one worker may still be beaten by overlap)
//   - n CPUs: 1, 2, 4, … up to 2n, with n inserted if it is not a power of two
func GenerateThreadCandidates() []int {
	return threadCandidates(runtime.NumCPU())
}

func threadCandidates(numCPU int) []int {
	if numCPU < 1 {
		numCPU = 1
	}
	var out []int
	for t := 1; t <= 2*numCPU; t *= 2 {
		if t > numCPU && (len(out) == 0 || out[len(out)-1] < numCPU) {
			out = append(out, numCPU)
		}
		out = append(out, t)
	}
	return out
}

// GenerateQuickThreadCandidates is a shorter list around the CPU count.
func GenerateQuickThreadCandidates() []int {
	n := runtime.NumCPU()
	if n <= 1 {
		return []int{1}
	}
	return []int{n / 2, n, 2 * n}
}
