package primes

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/pisanocalc/internal/errors"
)

const (
	// MaxCount is the largest number of primes Generate will produce.
	MaxCount = 1_000_000

	// UpperBound is the 1,000,000th prime. Generation never sieves past it,
	// and it is included so that MaxCount primes are always available.
	UpperBound = 15_485_863

	// SegmentSize is the number of integers sieved per segment. 256K bytes
	// keeps one segment inside a typical L2 cache.
	SegmentSize = 1 << 18
)

// Options configures prime generation.
type Options struct {
	// Workers bounds the number of segments sieved concurrently.
	// Zero or negative selects runtime.NumCPU().
	Workers int
}

// ValidateCount checks that count is within [1, MaxCount].
func ValidateCount(count int) error {
	if count < 1 || count > MaxCount {
		return apperrors.ValidationError{
			Field:   "count",
			Message: fmt.Sprintf("must be a positive integer up to %d, got %d", MaxCount, count),
		}
	}
	return nil
}

// SieveLimit returns an upper bound on the count-th prime, capped at
// UpperBound. For count >= 6 it uses p_n < n(ln n + ln ln n).
func SieveLimit(count int) uint64 {
	if count < 6 {
		return 13 // the 6th prime; covers every count below it
	}
	n := float64(count)
	limit := uint64(n*(math.Log(n)+math.Log(math.Log(n)))) + 1
	if limit > UpperBound {
		return UpperBound
	}
	return limit
}

// Generate returns the first count primes in ascending order.
//
// It runs a segmented sieve of Eratosthenes up to SieveLimit(count).
// Segments are sieved concurrently by a bounded errgroup. Each segment fills
// its own slot, so the concatenated output is deterministic. The context is
// checked before every segment.
func Generate(ctx context.Context, count int, opts Options) ([]uint64, error) {
	if err := ValidateCount(count); err != nil {
		return nil, err
	}

	ctx, span := otel.Tracer("pisanocalc/primes").Start(ctx, "primes.Generate")
	defer span.End()

	limit := SieveLimit(count)
	span.SetAttributes(attribute.Int("primes.count", count), attribute.Int64("primes.limit", int64(limit)))

	base := simpleSieve(uint64(math.Sqrt(float64(limit))) + 1)

	numSegments := int((limit + SegmentSize) / SegmentSize) // covers [0, limit]
	segments := make([][]uint64, numSegments)

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < numSegments; i++ {
		if gctx.Err() != nil {
			break
		}
		idx := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			lo := uint64(idx) * SegmentSize
			hi := lo + SegmentSize - 1
			if hi > limit {
				hi = limit
			}
			segments[idx] = sieveSegment(lo, hi, base)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := make([]uint64, 0, count)
	for _, seg := range segments {
		for _, p := range seg {
			if len(result) == count {
				return result, nil
			}
			result = append(result, p)
		}
	}
	return result, nil
}

// simpleSieve returns all primes <= n.
func simpleSieve(n uint64) []uint64 {
	composite := make([]bool, n+1)
	var primes []uint64
	for i := uint64(2); i <= n; i++ {
		if composite[i] {
			continue
		}
		primes = append(primes, i)
		for j := i * i; j <= n; j += i {
			composite[j] = true
		}
	}
	return primes
}

// sieveSegment returns the primes in [lo, hi] using the base primes, which
// must cover √hi.
func sieveSegment(lo, hi uint64, base []uint64) []uint64 {
	composite := make([]bool, hi-lo+1)
	for _, p := range base {
		if p*p > hi {
			break
		}
		start := p * p
		if start < lo {
			start = (lo + p - 1) / p * p
		}
		for j := start; j <= hi; j += p {
			composite[j-lo] = true
		}
	}

	var out []uint64
	for i, c := range composite {
		v := lo + uint64(i)
		if !c && v >= 2 {
			out = append(out, v)
		}
	}
	return out
}
