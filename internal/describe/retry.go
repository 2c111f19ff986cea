package describe

import (
	"context"
	"time"
)

// RetryPolicy retries transient failures with linear backoff. It is a plain
// value so the policy can be unit-tested without any network call.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration
	Retryable   func(error) bool
}

// DefaultRetryPolicy matches the generative service contract: 3 attempts,
// linear backoff, caller-supplied transient-error predicate.
func DefaultRetryPolicy(retryable func(error) bool) RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		Backoff:     time.Second,
		Retryable:   retryable,
	}
}

// Do runs fn until it succeeds, a non-retryable error occurs, the attempt
// budget is spent, or ctx is cancelled. The backoff before attempt N is
// N-1 times Backoff.
func (p RetryPolicy) Do(ctx context.Context, fn func(context.Context) error) error {

	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var err error

	for attempt := 1; attempt <= attempts; attempt++ {

		if attempt > 1 {
			wait := time.Duration(attempt-1) * p.Backoff

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}

		err = fn(ctx)
		if err == nil {
			return nil
		}

		if p.Retryable == nil || !p.Retryable(err) {
			return err
		}
	}

	return err
}
