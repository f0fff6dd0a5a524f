package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/agbru/pisanocalc/internal/orchestration"
)

func TestMetricsModel_UpdateMemStats(t *testing.T) {
	t.Parallel()
	m := NewMetricsModel()

	msg := MemStatsMsg{
		HeapAlloc:    50 << 20,
		HeapSys:      80 << 20,
		NumGC:        10,
		NumGoroutine: 8,
	}
	m.UpdateMemStats(msg)

	if m.heapAlloc != msg.HeapAlloc || m.heapSys != msg.HeapSys {
		t.Errorf("heap = %d/%d, want %d/%d", m.heapAlloc, m.heapSys, msg.HeapAlloc, msg.HeapSys)
	}
	if m.numGC != msg.NumGC || m.numGoroutine != msg.NumGoroutine {
		t.Errorf("gc/goroutines = %d/%d", m.numGC, m.numGoroutine)
	}
}

func TestMetricsModel_AddResult(t *testing.T) {
	t.Parallel()
	m := NewMetricsModel()
	if m.Throughput() != 0 {
		t.Errorf("empty throughput = %f, want 0", m.Throughput())
	}

	m.AddResult(orchestration.PeriodResult{Prime: 7, Period: 16, Duration: 100 * time.Millisecond})
	m.AddResult(orchestration.PeriodResult{Prime: 97, Period: 196, Duration: 300 * time.Millisecond})
	m.AddResult(orchestration.PeriodResult{Prime: 11, Period: 10, Duration: 100 * time.Millisecond})

	if m.slowest.Prime != 97 {
		t.Errorf("slowest prime = %d, want 97", m.slowest.Prime)
	}
	if got := m.Throughput(); got < 5.99 || got > 6.01 {
		t.Errorf("Throughput() = %f, want 6", got)
	}
	if m.history.Len() != 3 {
		t.Errorf("history length = %d, want 3", m.history.Len())
	}
}

func TestMetricsModel_View(t *testing.T) {
	t.Parallel()
	m := NewMetricsModel()
	m.SetWidth(100)
	m.UpdateMemStats(MemStatsMsg{HeapAlloc: 2 << 20, HeapSys: 4 << 20, NumGC: 3, NumGoroutine: 5})
	m.AddResult(orchestration.PeriodResult{Prime: 13, Period: 28, Duration: time.Millisecond})

	view := m.View()
	for _, want := range []string{"Heap:", "2.0 MiB / 4.0 MiB", "Goroutines:", "Slowest:", "13 (1ms)", "Search time:", "█"} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q, got:\n%s", want, view)
		}
	}
}
