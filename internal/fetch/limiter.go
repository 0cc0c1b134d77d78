package fetch

import (
	"context"
	"sync"
	"time"
)

// Limiter serializes enrichment fetches: callers hold it for the duration
// of a request, and consecutive acquisitions are spaced by a fixed delay.
// The zero delay still serializes without pacing.
type Limiter struct {
	mu    sync.Mutex
	delay time.Duration
	last  time.Time
}

// NewLimiter returns a limiter with the given inter-request delay.
func NewLimiter(delay time.Duration) *Limiter {
	return &Limiter{delay: delay}
}

// Acquire blocks until the limiter is free and the pacing delay since the
// previous release has elapsed, or the context is done. On success the
// caller must Release.
func (l *Limiter) Acquire(ctx context.Context) error {
	l.mu.Lock()

	wait := l.delay - time.Since(l.last)
	if l.last.IsZero() || wait <= 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		l.mu.Unlock()
		return ctx.Err()
	}
}

// Release frees the limiter and starts the pacing window for the next caller.
func (l *Limiter) Release() {
	l.last = time.Now()
	l.mu.Unlock()
}
