package describe_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aminati-ec/catalog-studio/internal/describe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTransient = errors.New("rate limited")

func transientOnly(err error) bool {
	return errors.Is(err, errTransient)
}

func TestRetryPolicyDo(t *testing.T) {
	ctx := t.Context()

	t.Run("Success - first attempt", func(t *testing.T) {
		policy := describe.RetryPolicy{MaxAttempts: 3, Retryable: transientOnly}
		calls := 0

		err := policy.Do(ctx, func(context.Context) error {
			calls++

			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("Transient errors are retried until success", func(t *testing.T) {
		policy := describe.RetryPolicy{MaxAttempts: 3, Backoff: time.Millisecond, Retryable: transientOnly}
		calls := 0

		err := policy.Do(ctx, func(context.Context) error {
			calls++
			if calls < 3 {
				return errTransient
			}

			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("Exhausted attempts return the last error", func(t *testing.T) {
		policy := describe.RetryPolicy{MaxAttempts: 3, Backoff: time.Millisecond, Retryable: transientOnly}
		calls := 0

		err := policy.Do(ctx, func(context.Context) error {
			calls++

			return errTransient
		})

		assert.ErrorIs(t, err, errTransient)
		assert.Equal(t, 3, calls)
	})

	t.Run("Non-retryable error aborts immediately", func(t *testing.T) {
		policy := describe.RetryPolicy{MaxAttempts: 3, Backoff: time.Millisecond, Retryable: transientOnly}
		fatal := errors.New("invalid credential")
		calls := 0

		err := policy.Do(ctx, func(context.Context) error {
			calls++

			return fatal
		})

		assert.ErrorIs(t, err, fatal)
		assert.Equal(t, 1, calls)
	})

	t.Run("Cancelled context stops the backoff wait", func(t *testing.T) {
		policy := describe.RetryPolicy{MaxAttempts: 3, Backoff: time.Minute, Retryable: transientOnly}

		cancelCtx, cancel := context.WithCancel(ctx)
		calls := 0

		go func() {
			time.Sleep(10 * time.Millisecond)
			cancel()
		}()

		err := policy.Do(cancelCtx, func(context.Context) error {
			calls++

			return errTransient
		})

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})
}
