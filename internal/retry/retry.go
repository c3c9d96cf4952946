// Package retry provides the exponential-backoff policy wrapped around
// fallible send operations.
package retry

import (
	"context"
	"fmt"
	"time"
)

// DefaultBaseDelay is the wait before the second attempt; each further
// attempt doubles it.
const DefaultBaseDelay = time.Second

// DefaultMaxDelay caps the backoff between attempts.
const DefaultMaxDelay = 30 * time.Second

// Policy retries an operation with exponential backoff. The first attempt
// runs immediately; attempt k waits BaseDelay * 2^(k-2) beforehand. All
// errors are treated as retryable.
type Policy struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration

	// Sleep is the policy's single suspension point. Overridable in tests
	// to run backoff without wall-clock waits.
	Sleep func(ctx context.Context, d time.Duration) error
}

// New creates a policy allowing maxRetries additional attempts after the
// first, with default delays.
func New(maxRetries int) *Policy {
	return &Policy{
		MaxRetries: maxRetries,
		BaseDelay:  DefaultBaseDelay,
		MaxDelay:   DefaultMaxDelay,
	}
}

// ExhaustedError reports that every attempt failed. It wraps the last error.
type ExhaustedError struct {
	Attempts int
	Cause    error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("all %d attempts failed: %v", e.Attempts, e.Cause)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Cause
}

// Execute runs op until it succeeds or the retry budget is spent. It
// returns the number of attempts made; on exhaustion the error is an
// *ExhaustedError wrapping the last failure.
func (p *Policy) Execute(ctx context.Context, op func(ctx context.Context) error) (int, error) {
	base := p.BaseDelay
	if base <= 0 {
		base = DefaultBaseDelay
	}
	maxDelay := p.MaxDelay
	if maxDelay <= 0 {
		maxDelay = DefaultMaxDelay
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = sleepContext
	}

	var lastErr error
	attempts := 0
	for attempt := 0; attempt <= p.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := base << (attempt - 1)
			if delay > maxDelay {
				delay = maxDelay
			}
			if err := sleep(ctx, delay); err != nil {
				return attempts, err
			}
		}

		attempts++
		if err := op(ctx); err != nil {
			lastErr = err
			continue
		}
		return attempts, nil
	}

	return attempts, &ExhaustedError{Attempts: attempts, Cause: lastErr}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
