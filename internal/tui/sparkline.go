package tui

import "time"

// sparklineChars maps levels 0..7 to Unicode block elements ▁▂▃▄▅▆▇█.
var sparklineChars = [8]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// searchWindow keeps the most recent per-prime search times, oldest first.
type searchWindow struct {
	samples []time.Duration
	size    int
}

func newSearchWindow(size int) *searchWindow {
	return &searchWindow{samples: make([]time.Duration, 0, max(size, 1)), size: max(size, 1)}
}

// Add appends d and drops the oldest sample once the window is full.
func (w *searchWindow) Add(d time.Duration) {
	if len(w.samples) == w.size {
		copy(w.samples, w.samples[1:])
		w.samples = w.samples[:w.size-1]
	}
	w.samples = append(w.samples, d)
}

// Len returns the number of samples held.
func (w *searchWindow) Len() int { return len(w.samples) }

// Values returns the samples, oldest first. The slice is owned by w.
func (w *searchWindow) Values() []time.Duration { return w.samples }

// RenderSparkline draws durations scaled to the largest one, so search
// times of very different magnitudes stay comparable within the window.
func RenderSparkline(values []time.Duration) string {
	if len(values) == 0 {
		return ""
	}
	var peak time.Duration
	for _, v := range values {
		peak = max(peak, v)
	}
	runes := make([]rune, len(values))
	for i, v := range values {
		level := 0
		if peak > 0 && v > 0 {
			level = min(int(float64(v)/float64(peak)*7.0), 7)
		}
		runes[i] = sparklineChars[level]
	}
	return string(runes)
}
