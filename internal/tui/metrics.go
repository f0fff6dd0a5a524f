package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/pisanocalc/internal/format"
	"github.com/agbru/pisanocalc/internal/orchestration"
)

// searchHistorySize is how many per-prime search times the sparkline keeps.
const searchHistorySize = 40

// MetricsModel displays runtime memory and batch throughput.
type MetricsModel struct {
	heapAlloc    uint64
	heapSys      uint64
	numGC        uint32
	numGoroutine int

	searched  int
	totalTime time.Duration
	slowest   orchestration.PeriodResult
	history   *searchWindow
	width     int
}

// NewMetricsModel creates a new metrics panel.
func NewMetricsModel() MetricsModel {
	return MetricsModel{history: newSearchWindow(searchHistorySize)}
}

// SetWidth updates the panel width.
func (m *MetricsModel) SetWidth(w int) {
	m.width = w
}

// UpdateMemStats updates memory statistics.
func (m *MetricsModel) UpdateMemStats(msg MemStatsMsg) {
	m.heapAlloc = msg.HeapAlloc
	m.heapSys = msg.HeapSys
	m.numGC = msg.NumGC
	m.numGoroutine = msg.NumGoroutine
}

// AddResult records the search time of one computed period.
func (m *MetricsModel) AddResult(r orchestration.PeriodResult) {
	m.searched++
	m.totalTime += r.Duration
	if r.Duration >= m.slowest.Duration {
		m.slowest = r
	}
	m.history.Add(r.Duration)
}

// Throughput returns periods per second of search time.
func (m MetricsModel) Throughput() float64 {
	if m.totalTime <= 0 {
		return 0
	}
	return float64(m.searched) / m.totalTime.Seconds()
}

// View renders the metrics panel.
func (m MetricsModel) View() string {
	colWidth := max((m.width-6)/2, 20)

	var avg time.Duration
	if m.searched > 0 {
		avg = m.totalTime / time.Duration(m.searched)
	}
	slowest := "-"
	if m.searched > 0 {
		slowest = fmt.Sprintf("%d (%s)", m.slowest.Prime, format.FormatExecutionDuration(m.slowest.Duration))
	}

	rows := []string{
		formatMetricCol("Heap:", format.FormatBytes(m.heapAlloc)+" / "+format.FormatBytes(m.heapSys), colWidth) +
			formatMetricCol("GC:", fmt.Sprintf("%d", m.numGC), colWidth),
		formatMetricCol("Avg search:", format.FormatExecutionDuration(avg), colWidth) +
			formatMetricCol("Goroutines:", fmt.Sprintf("%d", m.numGoroutine), colWidth),
		formatMetricCol("Rate:", fmt.Sprintf("%.1f/s", m.Throughput()), colWidth) +
			formatMetricCol("Slowest:", slowest, colWidth),
		" " + metricLabelStyle.Render(fmt.Sprintf("%-12s", "Search time:")) + " " +
			sparklineStyle.Render(RenderSparkline(m.history.Values())),
	}
	return panelStyle.Width(max(m.width-2, 0)).Render(strings.Join(rows, "\n"))
}

func formatMetricCol(label, value string, colWidth int) string {
	cell := fmt.Sprintf(" %s %s",
		metricLabelStyle.Render(fmt.Sprintf("%-12s", label)),
		metricValueStyle.Render(value))
	// Pad to fixed column width using lipgloss-aware width
	if visible := lipgloss.Width(cell); visible < colWidth {
		cell += strings.Repeat(" ", colWidth-visible)
	}
	return cell
}
