package orchestration

import (
	"io"
	"sync"
	"time"
)

// PeriodResult pairs a prime with its Pisano period.
type PeriodResult struct {
	Prime  uint64
	Period uint64
	// Duration is the time spent on this prime's search.
	Duration time.Duration
}

// BatchResult is the outcome of ExecutePeriods.
type BatchResult struct {
	// Results holds one entry per processed prime, in input order.
	Results []PeriodResult
	// Total is the number of primes submitted.
	Total int
	// Stopped is set when the batch ended before every prime was processed.
	Stopped bool
	// StopRequested is set when the StopFlag, rather than the context or an
	// error, ended the batch.
	StopRequested bool
	// Elapsed is the wall time of the whole batch.
	Elapsed time.Duration
}

// Completed returns the number of computed periods.
func (b BatchResult) Completed() int { return len(b.Results) }

// ProgressUpdate is published after each prime is processed.
type ProgressUpdate struct {
	// Done is the number of primes processed so far.
	Done int
	// Total is the batch size.
	Total int
	// Result is the period computed for the Done-th prime.
	Result PeriodResult
}

// Fraction returns Done/Total in [0, 1].
func (u ProgressUpdate) Fraction() float64 {
	if u.Total <= 0 {
		return 0
	}
	return float64(u.Done) / float64(u.Total)
}

// ProgressReporter defines the interface for displaying batch progress.
// This interface decouples the orchestration layer from the presentation layer.
//
// Implementations handle the visual representation of progress (spinners,
// progress bars, dashboards) while the orchestration layer focuses on running
// the batch.
type ProgressReporter interface {
	// DisplayProgress consumes updates until progressChan is closed and then
	// calls wg.Done. It runs in its own goroutine.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, total int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, total int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, total int, out io.Writer) {
	f(wg, progressChan, total, out)
}

// NullProgressReporter is a no-op implementation of ProgressReporter.
// It drains the progress channel without displaying anything.
// Useful for quiet mode or testing.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter renders a finished batch.
type ResultPresenter interface {
	// PresentBatch writes every result followed by a summary.
	PresentBatch(batch BatchResult, out io.Writer)
}

// BatchObserver receives per-item measurements, typically for metrics.
type BatchObserver interface {
	ObservePeriod(prime uint64, d time.Duration)
	ObserveBatch(batch BatchResult)
}

type nopObserver struct{}

func (nopObserver) ObservePeriod(uint64, time.Duration) {}
func (nopObserver) ObserveBatch(BatchResult)            {}
