package memory

import (
	"runtime/debug"
	"testing"
)

func TestNewGCControllerActivation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		mode       string
		iterations uint64
		precision  uint
		want       bool
	}{
		{"auto small", "auto", 100, 4096, false},
		{"auto many terms", "auto", GCAutoIterations, 4096, true},
		{"auto wide precision", "auto", 10, GCAutoPrecision, true},
		{"aggressive", "aggressive", 1, 64, true},
		{"disabled", "disabled", 1 << 20, 1 << 24, false},
		{"unknown", "sometimes", 1 << 20, 1 << 24, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := NewGCController(tc.mode, tc.iterations, tc.precision).Active(); got != tc.want {
				t.Errorf("Active() = %v, want %v", got, tc.want)
			}
		})
	}
}

// Toggles global collector state, so not parallel.
func TestGCControllerRestoresPercent(t *testing.T) {
	before := debug.SetGCPercent(100)
	defer debug.SetGCPercent(before)

	gc := NewGCController("aggressive", 1, 64)
	gc.Begin()
	_ = make([]byte, 1<<20)
	gc.End()

	if got := debug.SetGCPercent(100); got != 100 {
		t.Errorf("GC percent after End = %d, want 100", got)
	}
	if gc.Stats().TotalAlloc == 0 {
		t.Error("expected allocations between Begin and End")
	}
}

func TestInactiveControllerIsNoOp(t *testing.T) {
	t.Parallel()
	gc := NewGCController("disabled", 0, 0)
	gc.Begin()
	gc.End()
	if gc.Stats() != (GCStats{}) {
		t.Errorf("inactive controller recorded stats: %+v", gc.Stats())
	}
}

func TestReadSnapshot(t *testing.T) {
	t.Parallel()
	s := ReadSnapshot()
	if s.HeapAlloc == 0 || s.Sys == 0 {
		t.Errorf("implausible snapshot: %+v", s)
	}
}
