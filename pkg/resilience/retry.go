package resilience

import (
	"context"
	"time"
)

// Operation is any fallible call the resilience layer can wrap.
type Operation func(ctx context.Context) error

// Retry executes fn up to policy.Attempts times, sleeping between attempts
// according to the policy's exponential schedule. The first non-error return
// wins; once all attempts fail the last error is propagated unchanged so
// callers can still classify it.
//
// The inter-attempt sleep respects context cancellation, which lets a worker
// shut down without waiting out a long backoff.
func Retry(ctx context.Context, policy RetryPolicy, fn Operation) error {
	if fn == nil {
		return ErrNilOperation
	}
	policy = policy.normalized()

	var lastErr error
	for attempt := 1; attempt <= policy.Attempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(policy.delayBefore(attempt - 1)):
			}
		}

		if err := fn(ctx); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
