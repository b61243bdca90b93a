package httputil

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks a failure as transient. The backend gateway wraps
// 5xx responses and transport errors with it so [Retry] attempts the call
// again; anything else aborts the loop on first failure.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retry runs fn up to attempts times, sleeping delay between tries and
// doubling it after each failure. Non-retryable errors are returned
// immediately. When the context is cancelled mid-backoff, ctx.Err() is
// returned instead of the last failure.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)

	var lastErr error
	for i := range attempts {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !errors.As(lastErr, new(*RetryableError)) {
			return lastErr
		}
		if i == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return lastErr
}

// RetryWithBackoff is [Retry] with the defaults the gateway uses: three
// attempts starting at one second.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, 3, time.Second, fn)
}
