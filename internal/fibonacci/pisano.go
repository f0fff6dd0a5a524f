package fibonacci

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// cancelCheckInterval is the number of recurrence steps between context
// checks in PeriodContext.
const cancelCheckInterval = 1 << 16

// ErrPeriodNotFound is matched by errors.Is for every PeriodNotFoundError.
var ErrPeriodNotFound = errors.New("pisano period not found")

// PeriodNotFoundError reports a search that hit its step bound before the
// pair (0, 1) recurred.
type PeriodNotFoundError struct {
	Modulus uint64
	Bound   uint64
}

func (e *PeriodNotFoundError) Error() string {
	return fmt.Sprintf("pisano period of %d not found within %d steps", e.Modulus, e.Bound)
}

// Is reports whether target is ErrPeriodNotFound.
func (e *PeriodNotFoundError) Is(target error) bool {
	return target == ErrPeriodNotFound
}

// DefaultBound returns the step cap used when none is configured: 6n,
// the proven upper bound on the Pisano period (reached for n = 2·5^k).
// It saturates at math.MaxUint64.
func DefaultBound(n uint64) uint64 {
	if n > math.MaxUint64/6 {
		return math.MaxUint64
	}
	return 6 * n
}

// Period returns the Pisano period of n using DefaultBound.
func Period(n uint64) (uint64, error) {
	return PeriodWithin(n, 0)
}

// PeriodWithin returns the smallest positive k with F(k) ≡ 0 and
// F(k+1) ≡ 1 (mod n), iterating the recurrence at most maxSteps times.
// maxSteps == 0 selects DefaultBound(n). For n <= 1 the degenerate value n
// is returned.
func PeriodWithin(n, maxSteps uint64) (uint64, error) {
	return PeriodContext(context.Background(), n, maxSteps)
}

// PeriodContext is PeriodWithin with cancellation. ctx is polled every
// cancelCheckInterval steps and its error is returned once it is done.
func PeriodContext(ctx context.Context, n, maxSteps uint64) (uint64, error) {
	if n <= 1 {
		return n, nil
	}
	if maxSteps == 0 {
		maxSteps = DefaultBound(n)
	}

	var previous, current uint64 = 0, 1
	for i := uint64(1); i <= maxSteps; i++ {
		previous, current = current, addMod(previous, current, n)
		if previous == 0 && current == 1 {
			return i, nil
		}
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}
	}
	return 0, &PeriodNotFoundError{Modulus: n, Bound: maxSteps}
}
