package fetch

import (
	"fmt"

	"golang.org/x/sync/semaphore"
)

// ErrBrowserBusy is returned when all browser sessions are in use. Callers
// treat it as an upstream-unavailable condition for the whole run, not a
// per-candidate failure.
var ErrBrowserBusy = fmt.Errorf("no browser session available")

// Gate bounds concurrent browser sessions across requests. It is the only
// shared mutable state the fetch layer holds and is safe for concurrent use.
type Gate struct {
	sem *semaphore.Weighted
}

// NewGate creates a gate allowing n concurrent sessions. n < 1 defaults to 1.
func NewGate(n int) *Gate {
	if n < 1 {
		n = 1
	}
	return &Gate{sem: semaphore.NewWeighted(int64(n))}
}

// Acquire claims a session without blocking. On success the returned release
// function must be called exactly once.
func (g *Gate) Acquire() (release func(), err error) {
	if !g.sem.TryAcquire(1) {
		return nil, ErrBrowserBusy
	}
	return func() { g.sem.Release(1) }, nil
}
