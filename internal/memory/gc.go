package memory

import (
	"math"
	"runtime"
	"runtime/debug"

	"github.com/rs/zerolog"
)

// GCMode selects how the collector is handled during a run.
type GCMode string

const (
	GCModeAuto       GCMode = "auto"
	GCModeAggressive GCMode = "aggressive"
	GCModeDisabled   GCMode = "disabled"
)

// Auto mode engages once a run is large enough for collection pauses to
// matter: many terms, each with multi-thousand-digit factorials, or a very
// wide working precision.
const (
	GCAutoIterations uint64 = 2_000
	GCAutoPrecision  uint   = 1 << 22
)

// memoryLimitFactor bounds the heap while the collector is off.
const memoryLimitFactor = 3

// GCController suspends the collector for the duration of a run and
// restores it afterward.
type GCController struct {
	mode              GCMode
	originalGCPercent int
	active            bool
	logger            zerolog.Logger
	start             runtime.MemStats
	end               runtime.MemStats
}

// GCStats is the allocation delta between Begin and End.
type GCStats struct {
	HeapAlloc    uint64
	TotalAlloc   uint64
	NumGC        uint32
	PauseTotalNs uint64
}

// NewGCController builds a controller for a run of iterations terms at
// precision bits.
func NewGCController(mode string, iterations uint64, precision uint) *GCController {
	gc := &GCController{mode: GCMode(mode), logger: zerolog.Nop()}
	switch gc.mode {
	case GCModeAggressive:
		gc.active = true
	case GCModeAuto:
		gc.active = iterations >= GCAutoIterations || precision >= GCAutoPrecision
	}
	return gc
}

// Active reports whether Begin will touch the collector.
func (gc *GCController) Active() bool { return gc.active }

// SetLogger sets the logger for collector events.
func (gc *GCController) SetLogger(l zerolog.Logger) {
	gc.logger = l
}

// Begin disables the collector and installs a soft memory limit.
func (gc *GCController) Begin() {
	if !gc.active {
		return
	}
	runtime.ReadMemStats(&gc.start)
	gc.originalGCPercent = debug.SetGCPercent(-1)
	if limit := int64(gc.start.Sys) * memoryLimitFactor; limit > 0 {
		debug.SetMemoryLimit(limit)
	}
	gc.logger.Debug().
		Str("mode", string(gc.mode)).
		Uint64("heap_alloc_bytes", gc.start.HeapAlloc).
		Msg("gc disabled")
}

// End restores the collector settings and forces a collection.
func (gc *GCController) End() {
	if !gc.active {
		return
	}
	runtime.ReadMemStats(&gc.end)
	debug.SetGCPercent(gc.originalGCPercent)
	debug.SetMemoryLimit(math.MaxInt64)
	runtime.GC()
	s := gc.Stats()
	gc.logger.Debug().
		Str("mode", string(gc.mode)).
		Uint64("heap_alloc_bytes", s.HeapAlloc).
		Uint64("total_alloc_bytes", s.TotalAlloc).
		Uint32("gc_cycles", s.NumGC).
		Msg("gc re-enabled")
}

// Stats returns the delta recorded by Begin and End. It is zero for an
// inactive controller.
func (gc *GCController) Stats() GCStats {
	return GCStats{
		HeapAlloc:    gc.end.HeapAlloc,
		TotalAlloc:   gc.end.TotalAlloc - gc.start.TotalAlloc,
		NumGC:        gc.end.NumGC - gc.start.NumGC,
		PauseTotalNs: gc.end.PauseTotalNs - gc.start.PauseTotalNs,
	}
}
