// Package metrics reports runtime memory usage and host CPU features for
// result details and calibration profiles.
package metrics

import "runtime"

// MemorySnapshot is a point-in-time reading of the Go runtime's memory
// statistics.
type MemorySnapshot struct {
	HeapAlloc    uint64 // live heap bytes
	TotalAlloc   uint64 // cumulative bytes allocated
	Sys          uint64 // bytes obtained from the OS
	Mallocs      uint64
	NumGC        uint32
	PauseTotalNs uint64
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads the current statistics. It briefly stops the world.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		TotalAlloc:   m.TotalAlloc,
		Sys:          m.Sys,
		Mallocs:      m.Mallocs,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
	}
}

// MemoryDelta is the allocation activity between two snapshots.
type MemoryDelta struct {
	Allocated uint64
	Mallocs   uint64
	GCCycles  uint32
	PeakHeap  uint64
}

// Since returns the activity from before to s. PeakHeap is the larger of
// the two live-heap readings.
func (s MemorySnapshot) Since(before MemorySnapshot) MemoryDelta {
	return MemoryDelta{
		Allocated: s.TotalAlloc - before.TotalAlloc,
		Mallocs:   s.Mallocs - before.Mallocs,
		GCCycles:  s.NumGC - before.NumGC,
		PeakHeap:  max(s.HeapAlloc, before.HeapAlloc),
	}
}
