package resilience_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusalert/campusalert/pkg/resilience"
)

func TestRegistryExecute(t *testing.T) {
	t.Parallel()

	t.Run("successful call records success", func(t *testing.T) {
		t.Parallel()

		reg := resilience.NewRegistry()
		err := reg.Execute(context.Background(), "weather", func(ctx context.Context) error {
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, "closed", reg.BreakerStats("weather").State)
	})

	t.Run("retry sequence counts as a single breaker failure", func(t *testing.T) {
		t.Parallel()

		reg := resilience.NewRegistry(
			resilience.WithDefaultRetryPolicy(resilience.RetryPolicy{Attempts: 3, Delay: time.Millisecond, Backoff: 1}),
			resilience.WithDefaultCircuitBreakerPolicy(resilience.CircuitBreakerPolicy{Threshold: 2, Cooldown: time.Minute}),
		)

		var calls atomic.Int32
		failing := func(ctx context.Context) error {
			calls.Add(1)
			return errors.New("transport down")
		}

		require.Error(t, reg.Execute(context.Background(), "health", failing))
		assert.EqualValues(t, 3, calls.Load(), "all raw attempts happen within one gated call")
		assert.Equal(t, 1, reg.BreakerStats("health").Failures)
	})

	t.Run("open circuit fails fast without invoking the operation", func(t *testing.T) {
		t.Parallel()

		reg := resilience.NewRegistry(
			resilience.WithDefaultRetryPolicy(resilience.RetryPolicy{Attempts: 1, Delay: time.Millisecond, Backoff: 1}),
			resilience.WithDefaultCircuitBreakerPolicy(resilience.CircuitBreakerPolicy{Threshold: 1, Cooldown: time.Minute}),
		)

		require.Error(t, reg.Execute(context.Background(), "security", func(ctx context.Context) error {
			return errors.New("boom")
		}))

		var calls atomic.Int32
		err := reg.Execute(context.Background(), "security", func(ctx context.Context) error {
			calls.Add(1)
			return nil
		})
		assert.ErrorIs(t, err, resilience.ErrCircuitOpen)
		assert.Zero(t, calls.Load(), "no delivery attempt behind an open circuit")
	})

	t.Run("keys are isolated", func(t *testing.T) {
		t.Parallel()

		reg := resilience.NewRegistry(
			resilience.WithDefaultRetryPolicy(resilience.RetryPolicy{Attempts: 1, Delay: time.Millisecond, Backoff: 1}),
			resilience.WithDefaultCircuitBreakerPolicy(resilience.CircuitBreakerPolicy{Threshold: 1, Cooldown: time.Minute}),
		)

		require.Error(t, reg.Execute(context.Background(), "security", func(ctx context.Context) error {
			return errors.New("boom")
		}))

		err := reg.Execute(context.Background(), "weather", func(ctx context.Context) error {
			return nil
		})
		assert.NoError(t, err, "one notifier's open circuit must not affect another")
	})

	t.Run("probe after cooldown closes the circuit on success", func(t *testing.T) {
		t.Parallel()

		reg := resilience.NewRegistry(
			resilience.WithDefaultRetryPolicy(resilience.RetryPolicy{Attempts: 1, Delay: time.Millisecond, Backoff: 1}),
			resilience.WithDefaultCircuitBreakerPolicy(resilience.CircuitBreakerPolicy{Threshold: 1, Cooldown: 30 * time.Millisecond}),
		)

		require.Error(t, reg.Execute(context.Background(), "infra", func(ctx context.Context) error {
			return errors.New("boom")
		}))
		assert.ErrorIs(t, reg.Execute(context.Background(), "infra", func(ctx context.Context) error {
			return nil
		}), resilience.ErrCircuitOpen)

		time.Sleep(40 * time.Millisecond)

		require.NoError(t, reg.Execute(context.Background(), "infra", func(ctx context.Context) error {
			return nil
		}))
		assert.Equal(t, "closed", reg.BreakerStats("infra").State)
	})

	t.Run("nil operation", func(t *testing.T) {
		t.Parallel()

		reg := resilience.NewRegistry()
		assert.ErrorIs(t, reg.Execute(context.Background(), "weather", nil), resilience.ErrNilOperation)
	})
}

func TestRegistryConfigure(t *testing.T) {
	t.Parallel()

	t.Run("configure retry policy takes effect", func(t *testing.T) {
		t.Parallel()

		reg := resilience.NewRegistry()
		reg.ConfigureRetry("weather", resilience.RetryPolicy{Attempts: 5, Delay: time.Millisecond, Backoff: 1})

		var calls atomic.Int32
		require.Error(t, reg.Execute(context.Background(), "weather", func(ctx context.Context) error {
			calls.Add(1)
			return errors.New("fail")
		}))
		assert.EqualValues(t, 5, calls.Load())
	})

	t.Run("reset to defaults restores attempts", func(t *testing.T) {
		t.Parallel()

		reg := resilience.NewRegistry(
			resilience.WithDefaultRetryPolicy(resilience.RetryPolicy{Attempts: 2, Delay: time.Millisecond, Backoff: 1}),
		)
		reg.ConfigureRetry("health", resilience.RetryPolicy{Attempts: 4, Delay: time.Millisecond, Backoff: 1})
		require.NoError(t, reg.ResetToDefaults("health", resilience.PolicyRetry))
		assert.Equal(t, 2, reg.RetryPolicyFor("health").Attempts)
	})

	t.Run("configure breaker rebuilds state", func(t *testing.T) {
		t.Parallel()

		reg := resilience.NewRegistry(
			resilience.WithDefaultRetryPolicy(resilience.RetryPolicy{Attempts: 1, Delay: time.Millisecond, Backoff: 1}),
			resilience.WithDefaultCircuitBreakerPolicy(resilience.CircuitBreakerPolicy{Threshold: 1, Cooldown: time.Minute}),
		)
		require.Error(t, reg.Execute(context.Background(), "security", func(ctx context.Context) error {
			return errors.New("boom")
		}))
		assert.Equal(t, "open", reg.BreakerStats("security").State)

		reg.ConfigureCircuitBreaker("security", resilience.CircuitBreakerPolicy{Threshold: 3, Cooldown: time.Minute})
		assert.Equal(t, "closed", reg.BreakerStats("security").State)
	})

	t.Run("unknown policy kind", func(t *testing.T) {
		t.Parallel()

		reg := resilience.NewRegistry()
		assert.ErrorIs(t, reg.ResetToDefaults("weather", resilience.PolicyKind("logging")), resilience.ErrUnknownPolicyKind)
	})
}
