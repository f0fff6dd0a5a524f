package tui

import (
	"time"

	"github.com/agbru/pisanocalc/internal/orchestration"
)

// ProgressMsg carries one aggregated progress update from the batch.
type ProgressMsg struct {
	orchestration.AggregatedProgress
}

// ProgressDoneMsg signals that the progress channel was closed.
type ProgressDoneMsg struct{}

// BatchDoneMsg carries the outcome of ExecutePeriods.
type BatchDoneMsg struct {
	Batch orchestration.BatchResult
	Err   error
}

// TickMsg drives periodic refresh of the elapsed timer and memory stats.
type TickMsg time.Time

// MemStatsMsg carries a runtime memory sample.
type MemStatsMsg struct {
	HeapAlloc    uint64
	HeapSys      uint64
	NumGC        uint32
	NumGoroutine int
}
