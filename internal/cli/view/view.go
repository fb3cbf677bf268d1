// Package view ties in-flight fetches to the lifetime of the view that
// started them. A response arriving after its view is torn down is
// discarded instead of applied, so nothing mutates state on behalf of a
// dead view. There is no request cancellation — the request finishes, only
// its result is dropped.
package view

import "sync"

// Lifetime tracks whether the owning view is still alive
type Lifetime struct {
	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewLifetime returns a live Lifetime
func NewLifetime() *Lifetime {
	return &Lifetime{}
}

// Alive reports whether the view has not been closed yet
func (l *Lifetime) Alive() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return !l.closed
}

// Close marks the view dead. Results of fetches still in flight will be
// discarded. Idempotent.
func (l *Lifetime) Close() {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()
}

// Fetch runs fetch in its own goroutine and hands the result to apply —
// unless the view was closed in the meantime, in which case the result is
// dropped. The liveness check and the apply run under the same lock, so a
// concurrent Close cannot slip between them.
func (l *Lifetime) Fetch(fetch func() (any, error), apply func(any, error)) {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		result, err := fetch()

		l.mu.Lock()
		defer l.mu.Unlock()
		if l.closed {
			return
		}
		apply(result, err)
	}()
}

// Wait blocks until all fetches started on this lifetime have finished.
// Used in tests and teardown paths.
func (l *Lifetime) Wait() {
	l.wg.Wait()
}
