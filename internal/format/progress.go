package format

import (
	"fmt"
	"strings"
	"time"
)

const (
	// MaxETA caps the displayed estimate; beyond it the rate is too noisy to
	// mean anything.
	MaxETA = 24 * time.Hour

	// rateSmoothing is the weight of the newest sample in the exponential
	// moving average of the progress rate.
	rateSmoothing = 0.3
)

// ProgressBar renders progress (clamped to [0, 1]) as a bar of length runes.
func ProgressBar(progress float64, length int) string {
	progress = clamp(progress)
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length * 3)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}

// FormatETA renders an estimate compactly: "< 1s", "45s", "2m30s", "1h15m".
// Non-positive values mean no estimate is available yet.
func FormatETA(eta time.Duration) string {
	if eta <= 0 {
		return "calculating..."
	}
	if eta < time.Second {
		return "< 1s"
	}
	eta = eta.Round(time.Second)
	h := int(eta / time.Hour)
	m := int(eta % time.Hour / time.Minute)
	s := int(eta % time.Minute / time.Second)
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh%dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	case m > 0 && s > 0:
		return fmt.Sprintf("%dm%ds", m, s)
	case m > 0:
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%ds", s)
}

// FormatProgressBarWithETA renders "[bar] 42.0% ETA: 3s".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("[%s] %5.1f%% ETA: %s", ProgressBar(progress, width), clamp(progress)*100, FormatETA(eta))
}

// ProgressWithETA tracks the completion fraction of a batch and estimates the
// time remaining from a smoothed progress rate. It is not safe for
// concurrent use; the reporter goroutine owns it.
type ProgressWithETA struct {
	progress     float64
	progressRate float64 // fraction per second
	startTime    time.Time
	lastTime     time.Time
	lastProgress float64
	now          func() time.Time
}

// NewProgressWithETA starts tracking at the current time.
func NewProgressWithETA() *ProgressWithETA {
	return newProgressWithETA(time.Now)
}

func newProgressWithETA(now func() time.Time) *ProgressWithETA {
	start := now()
	return &ProgressWithETA{startTime: start, lastTime: start, now: now}
}

// Update records the completion fraction and returns it with the new ETA.
func (p *ProgressWithETA) Update(progress float64) (float64, time.Duration) {
	progress = clamp(progress)
	now := p.now()
	if dt := now.Sub(p.lastTime).Seconds(); dt > 0 && progress > p.lastProgress {
		sample := (progress - p.lastProgress) / dt
		if p.progressRate == 0 {
			p.progressRate = sample
		} else {
			p.progressRate = rateSmoothing*sample + (1-rateSmoothing)*p.progressRate
		}
		p.lastTime = now
		p.lastProgress = progress
	}
	p.progress = progress
	return progress, p.GetETA()
}

// Progress returns the last recorded fraction.
func (p *ProgressWithETA) Progress() float64 { return p.progress }

// Elapsed returns the time since tracking started.
func (p *ProgressWithETA) Elapsed() time.Duration { return p.now().Sub(p.startTime) }

// GetETA returns the current estimate, zero when unknown or complete.
func (p *ProgressWithETA) GetETA() time.Duration {
	if p.progressRate <= 0 || p.progress >= 1 {
		return 0
	}
	seconds := (1 - p.progress) / p.progressRate
	if seconds > MaxETA.Seconds() {
		return MaxETA
	}
	return time.Duration(seconds * float64(time.Second))
}

func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < 0 {
		return 0
	}
	return v
}
