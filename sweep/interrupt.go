package sweep

import "sync/atomic"

// Interrupt is the externally-owned cancellation token polled by the
// driver before each cell. Cancellation is cooperative: once a flag is
// observed no further cells are started, but the in-flight cell always
// completes or fails synchronously before control returns.
//
// The flags may be set from another goroutine (e.g. a signal handler);
// the driver itself is strictly single-threaded.
type Interrupt struct {
	interrupted    atomic.Bool
	stopGeneration atomic.Bool
}

// Interrupt requests that the sweep stop before the next cell.
func (i *Interrupt) Interrupt() {
	i.interrupted.Store(true)
}

// StopGeneration requests that no further images be generated.
func (i *Interrupt) StopGeneration() {
	i.stopGeneration.Store(true)
}

// Stopped reports whether either stop flag has been raised. Nil-safe so an
// engine without a token never stops early.
func (i *Interrupt) Stopped() bool {
	if i == nil {
		return false
	}
	return i.interrupted.Load() || i.stopGeneration.Load()
}

// Reset clears both flags for reuse across runs.
func (i *Interrupt) Reset() {
	i.interrupted.Store(false)
	i.stopGeneration.Store(false)
}
