// Package ratelimit provides the sliding-window throttle that bounds
// outbound send throughput.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter admits at most Max acquisitions per Window. Excess callers block
// in Acquire until a slot frees up; admission is first-requested,
// first-admitted. Safe for concurrent use.
type Limiter struct {
	max    int
	window time.Duration

	// admitMu serializes waiters so admission stays FIFO.
	admitMu sync.Mutex
	// mu guards times; held only for bookkeeping, never across a sleep.
	mu    sync.Mutex
	times []time.Time

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a limiter admitting perMinute acquisitions per 60-second window.
func New(perMinute int) *Limiter {
	return NewWithWindow(perMinute, time.Minute)
}

// NewWithWindow creates a limiter admitting max acquisitions per window.
func NewWithWindow(max int, window time.Duration) *Limiter {
	if max < 1 {
		max = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &Limiter{
		max:    max,
		window: window,
		now:    time.Now,
		sleep:  sleepContext,
	}
}

// Acquire blocks until a send slot is available or ctx is done.
func (l *Limiter) Acquire(ctx context.Context) error {
	l.admitMu.Lock()
	defer l.admitMu.Unlock()

	for {
		wait, ok := l.tryAdmit()
		if ok {
			return nil
		}
		if err := l.sleep(ctx, wait); err != nil {
			return err
		}
	}
}

// TryAcquire admits immediately if a slot is free, without blocking.
func (l *Limiter) TryAcquire() bool {
	_, ok := l.tryAdmit()
	return ok
}

// tryAdmit records an admission if the window has room, otherwise returns
// how long until the oldest admission expires.
func (l *Limiter) tryAdmit() (time.Duration, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.pruneLocked(now)

	if len(l.times) < l.max {
		l.times = append(l.times, now)
		return 0, true
	}
	return l.times[0].Add(l.window).Sub(now), false
}

// pruneLocked drops admissions that have aged out of the window.
func (l *Limiter) pruneLocked(now time.Time) {
	cutoff := now.Add(-l.window)
	i := 0
	for i < len(l.times) && !l.times[i].After(cutoff) {
		i++
	}
	l.times = l.times[i:]
}

// Status describes the limiter's current window occupancy.
type Status struct {
	InWindow int           `json:"requests_in_window"`
	Max      int           `json:"max_requests"`
	Window   time.Duration `json:"window"`
	Wait     time.Duration `json:"wait"`
}

// GetStatus reports window occupancy and the wait a new caller would incur.
func (l *Limiter) GetStatus() Status {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.pruneLocked(now)

	st := Status{InWindow: len(l.times), Max: l.max, Window: l.window}
	if len(l.times) >= l.max {
		st.Wait = l.times[0].Add(l.window).Sub(now)
	}
	return st
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
