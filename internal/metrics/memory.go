package metrics

import (
	"fmt"
	"runtime"

	"github.com/agbru/pisanocalc/internal/format"
)

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes in use by application
	HeapSys      uint64 // bytes obtained from OS for heap
	Sys          uint64 // total bytes obtained from OS
	TotalAlloc   uint64 // cumulative bytes allocated
	NumGC        uint32 // number of completed GC cycles
	PauseTotalNs uint64 // cumulative GC pause time
	HeapObjects  uint64 // number of allocated heap objects
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct {
	read func(*runtime.MemStats)
}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{read: runtime.ReadMemStats}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	mc.read(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		HeapSys:      m.HeapSys,
		Sys:          m.Sys,
		TotalAlloc:   m.TotalAlloc,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
		HeapObjects:  m.HeapObjects,
	}
}

// MemoryUsage summarizes the memory cost of a run between two snapshots.
type MemoryUsage struct {
	Allocated uint64 // bytes allocated during the run
	PeakHeap  uint64 // heap in use at the end of the run
	GCCycles  uint32
}

// Since returns the usage accumulated from before to s.
func (s MemorySnapshot) Since(before MemorySnapshot) MemoryUsage {
	return MemoryUsage{
		Allocated: s.TotalAlloc - before.TotalAlloc,
		PeakHeap:  s.HeapAlloc,
		GCCycles:  s.NumGC - before.NumGC,
	}
}

// String renders the usage for the verbose summary.
func (u MemoryUsage) String() string {
	return fmt.Sprintf("allocated %s, heap %s, %d GC cycle(s)", format.FormatBytes(u.Allocated), format.FormatBytes(u.PeakHeap), u.GCCycles)
}
