package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/pisanocalc/internal/format"
)

// HeaderModel renders the top bar: title, version, elapsed time, status.
type HeaderModel struct {
	startTime time.Time
	endTime   time.Time
	version   string
	status    string
	width     int
}

// NewHeaderModel creates a new header.
func NewHeaderModel(version string) HeaderModel {
	return HeaderModel{
		startTime: time.Now(),
		version:   version,
		status:    statusRunningStyle.Render("RUNNING"),
	}
}

// SetDone freezes the elapsed timer and shows the final status.
func (h *HeaderModel) SetDone(status string) {
	h.endTime = time.Now()
	h.status = status
}

// SetStatus replaces the status badge.
func (h *HeaderModel) SetStatus(status string) {
	h.status = status
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// Elapsed returns the running time, frozen once the batch is done.
func (h HeaderModel) Elapsed() time.Duration {
	if !h.endTime.IsZero() {
		return h.endTime.Sub(h.startTime)
	}
	return time.Since(h.startTime)
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "Pisano Monitor"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	pipe := dimStyle.Render(" | ")
	elapsed := elapsedStyle.Render(fmt.Sprintf("Elapsed: %s", format.FormatExecutionDuration(h.Elapsed().Round(time.Second/10))))

	left := titleStyle.Render(titleText) + pipe + elapsed
	gap := h.width - 2 - lipgloss.Width(left) - lipgloss.Width(h.status)
	if gap < 1 {
		gap = 1
	}
	return headerStyle.Render(left + strings.Repeat(" ", gap) + h.status)
}
