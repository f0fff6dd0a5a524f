package orchestration

import "sync/atomic"

// StopFlag is the cooperative stop signal of a batch. A UI goroutine sets it
// and the batch loop polls it between primes. The zero value is ready to use
// and a nil *StopFlag never reports stopped.
type StopFlag struct {
	stopped atomic.Bool
}

// Stop requests the batch to end after the current prime.
func (f *StopFlag) Stop() {
	if f != nil {
		f.stopped.Store(true)
	}
}

// Stopped reports whether Stop has been called.
func (f *StopFlag) Stopped() bool {
	return f != nil && f.stopped.Load()
}

// Reset clears the flag so the same value can guard a new batch.
func (f *StopFlag) Reset() {
	if f != nil {
		f.stopped.Store(false)
	}
}
