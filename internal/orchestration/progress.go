package orchestration

import (
	"time"

	"github.com/agbru/pisanocalc/internal/format"
)

// ProgressAggregator turns a stream of ProgressUpdate values into the
// completion fraction and ETA shown by both the CLI and the dashboard.
type ProgressAggregator struct {
	state *format.ProgressWithETA
	total int
	last  ProgressUpdate
}

// NewProgressAggregator creates an aggregator for a batch of total primes.
// Returns nil if total <= 0.
func NewProgressAggregator(total int) *ProgressAggregator {
	if total <= 0 {
		return nil
	}
	return &ProgressAggregator{state: format.NewProgressWithETA(), total: total}
}

// AggregatedProgress holds the result of processing a single progress update.
type AggregatedProgress struct {
	Done     int
	Total    int
	Fraction float64
	ETA      time.Duration
	Latest   PeriodResult
}

// Update processes a single progress update and returns the aggregated result.
func (a *ProgressAggregator) Update(update ProgressUpdate) AggregatedProgress {
	a.last = update
	fraction, eta := a.state.Update(update.Fraction())
	return AggregatedProgress{
		Done:     update.Done,
		Total:    a.total,
		Fraction: fraction,
		ETA:      eta,
		Latest:   update.Result,
	}
}

// Fraction returns the last recorded completion fraction.
func (a *ProgressAggregator) Fraction() float64 {
	return a.state.Progress()
}

// GetETA returns the current ETA estimate without updating.
// Useful for periodic refresh between updates (e.g., CLI ticker).
func (a *ProgressAggregator) GetETA() time.Duration {
	return a.state.GetETA()
}

// Done returns the number of primes processed so far.
func (a *ProgressAggregator) Done() int { return a.last.Done }

// Total returns the batch size.
func (a *ProgressAggregator) Total() int { return a.total }

// DrainChannel reads all updates from the channel without processing.
func DrainChannel(progressChan <-chan ProgressUpdate) {
	for range progressChan {
	}
}
