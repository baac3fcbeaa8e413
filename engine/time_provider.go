package engine

import (
	"context"
	"time"
)

// Timer is a pending one-shot callback
type Timer interface {
	// Stop cancels the timer, returns false if it already fired or was stopped
	Stop() bool
}

// TimeProvider supplies wall-clock readings and one-shot timers
type TimeProvider interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}

// MonotonicTimeProvider provides the real system time with monotonic clock readings
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider creates a new monotonic time provider
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

// Now returns the current time with monotonic clock reading
func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}

// AfterFunc runs fn on its own goroutine after d
func (p *MonotonicTimeProvider) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// Sleep blocks for d on tp, returns ctx.Err() if ctx ends first
func Sleep(ctx context.Context, tp TimeProvider, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	done := make(chan struct{})
	t := tp.AfterFunc(d, func() { close(done) })

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		t.Stop()
		return ctx.Err()
	}
}
