package memory

import "runtime"

// Snapshot is a point-in-time reading of the runtime memory statistics.
type Snapshot struct {
	HeapAlloc    uint64
	HeapSys      uint64
	Sys          uint64
	NumGC        uint32
	PauseTotalNs uint64
	HeapObjects  uint64
}

// ReadSnapshot samples runtime.MemStats. It stops the world briefly, so
// callers sample on a timer rather than per term.
func ReadSnapshot() Snapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return Snapshot{
		HeapAlloc:    m.HeapAlloc,
		HeapSys:      m.HeapSys,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
		HeapObjects:  m.HeapObjects,
	}
}
