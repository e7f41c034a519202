package resilience_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusalert/campusalert/pkg/resilience"
)

func TestExponentialBackoff(t *testing.T) {
	t.Parallel()

	t.Run("geometric growth", func(t *testing.T) {
		t.Parallel()

		b := resilience.ExponentialBackoff{InitialInterval: time.Second, Multiplier: 2}
		assert.Equal(t, time.Duration(0), b.NextInterval(0))
		assert.Equal(t, time.Second, b.NextInterval(1))
		assert.Equal(t, 2*time.Second, b.NextInterval(2))
		assert.Equal(t, 4*time.Second, b.NextInterval(3))
	})

	t.Run("respects max interval", func(t *testing.T) {
		t.Parallel()

		b := resilience.ExponentialBackoff{
			InitialInterval: time.Second,
			Multiplier:      2,
			MaxInterval:     3 * time.Second,
		}
		assert.Equal(t, 3*time.Second, b.NextInterval(5))
	})

	t.Run("jitter stays within bounds", func(t *testing.T) {
		t.Parallel()

		b := resilience.ExponentialBackoff{
			InitialInterval: time.Second,
			Multiplier:      2,
			JitterFactor:    0.5,
		}
		for range 50 {
			d := b.NextInterval(1)
			assert.GreaterOrEqual(t, d, 500*time.Millisecond)
			assert.LessOrEqual(t, d, 1500*time.Millisecond)
		}
	})

	t.Run("zero values get defaults", func(t *testing.T) {
		t.Parallel()

		b := resilience.ExponentialBackoff{}
		assert.Equal(t, time.Second, b.NextInterval(1))
		assert.Equal(t, 2*time.Second, b.NextInterval(2))
	})
}

func TestLinearBackoff(t *testing.T) {
	t.Parallel()

	b := resilience.LinearBackoff{Interval: time.Second, MaxInterval: 3 * time.Second}
	assert.Equal(t, time.Duration(0), b.NextInterval(0))
	assert.Equal(t, time.Second, b.NextInterval(1))
	assert.Equal(t, 2*time.Second, b.NextInterval(2))
	assert.Equal(t, 3*time.Second, b.NextInterval(3))
	assert.Equal(t, 3*time.Second, b.NextInterval(10))
}

func TestFixedBackoff(t *testing.T) {
	t.Parallel()

	b := resilience.FixedBackoff{Interval: 250 * time.Millisecond}
	assert.Equal(t, time.Duration(0), b.NextInterval(0))
	assert.Equal(t, 250*time.Millisecond, b.NextInterval(1))
	assert.Equal(t, 250*time.Millisecond, b.NextInterval(7))
}

func TestRetryWithCustomStrategy(t *testing.T) {
	t.Parallel()

	policy := resilience.RetryPolicy{
		Attempts: 3,
		Strategy: resilience.FixedBackoff{Interval: time.Millisecond},
	}

	attempts := 0
	start := time.Now()
	err := resilience.Retry(context.Background(), policy, func(context.Context) error {
		attempts++
		return errors.New("still down")
	})
	require.EqualError(t, err, "still down")
	assert.Equal(t, 3, attempts)
	// Two fixed 1ms pauses rather than the exponential default.
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}
