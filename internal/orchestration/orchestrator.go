package orchestration

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/agbru/pisanocalc/internal/errors"
	"github.com/agbru/pisanocalc/internal/fibonacci"
)

const tracerName = "github.com/agbru/pisanocalc/internal/orchestration"

// ProgressBufferSize is the capacity of the progress channel. A larger buffer
// reduces the likelihood of blocking the batch when the UI is slow to
// consume updates.
const ProgressBufferSize = 64

// Options configures ExecutePeriods.
type Options struct {
	// MaxSteps caps each period search. Zero selects fibonacci.DefaultBound.
	MaxSteps uint64
	// Observer receives timing data. Nil disables observation.
	Observer BatchObserver
}

// ExecutePeriods computes the Pisano period of every prime in order.
//
// Before each prime it polls stop and ctx. When either fires, the results
// gathered so far are returned with Stopped set; a stop request yields a nil
// error while a context yields its error. A search that exceeds
// opts.MaxSteps ends the batch with an apperrors.CalculationError wrapping
// *fibonacci.PeriodNotFoundError, again alongside the partial results.
//
// Progress updates are sent to reporter, which runs in its own goroutine and
// is joined before ExecutePeriods returns.
func ExecutePeriods(ctx context.Context, primes []uint64, opts Options, stop *StopFlag, reporter ProgressReporter, out io.Writer) (BatchResult, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "orchestration.ExecutePeriods",
		trace.WithAttributes(
			attribute.Int("batch.size", len(primes)),
			attribute.Int64("batch.max_steps", int64(min(opts.MaxSteps, 1<<63-1))),
		))
	defer span.End()

	observer := opts.Observer
	if observer == nil {
		observer = nopObserver{}
	}
	if reporter == nil {
		reporter = NullProgressReporter{}
	}

	start := time.Now()
	batch := BatchResult{Results: make([]PeriodResult, 0, len(primes)), Total: len(primes)}
	progressChan := make(chan ProgressUpdate, ProgressBufferSize)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, progressChan, len(primes), out)

	err := runBatch(ctx, primes, opts.MaxSteps, stop, observer, progressChan, &batch)

	close(progressChan)
	displayWg.Wait()

	batch.Elapsed = time.Since(start)
	batch.Stopped = batch.Completed() < batch.Total
	observer.ObserveBatch(batch)

	span.SetAttributes(
		attribute.Int("batch.completed", batch.Completed()),
		attribute.Bool("batch.stopped", batch.Stopped),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return batch, err
}

func runBatch(ctx context.Context, primes []uint64, maxSteps uint64, stop *StopFlag, observer BatchObserver, progressChan chan<- ProgressUpdate, batch *BatchResult) error {
	for i, p := range primes {
		if err := ctx.Err(); err != nil {
			return err
		}
		if stop.Stopped() {
			batch.StopRequested = true
			return nil
		}

		itemStart := time.Now()
		period, err := fibonacci.PeriodContext(ctx, p, maxSteps)
		if err != nil {
			if errors.Is(err, fibonacci.ErrPeriodNotFound) {
				return apperrors.CalculationError{Cause: err}
			}
			return err
		}

		result := PeriodResult{Prime: p, Period: period, Duration: time.Since(itemStart)}
		batch.Results = append(batch.Results, result)
		observer.ObservePeriod(p, result.Duration)
		progressChan <- ProgressUpdate{Done: i + 1, Total: len(primes), Result: result}
	}
	return nil
}
