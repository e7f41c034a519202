package metrics_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusalert/campusalert/pkg/metrics"
)

func TestAggregatorRecord(t *testing.T) {
	t.Parallel()

	t.Run("tracks per notifier stats", func(t *testing.T) {
		t.Parallel()

		agg := metrics.NewAggregator()
		agg.Record("weather", nil, 100*time.Millisecond)
		agg.Record("weather", errors.New("smtp timeout"), 300*time.Millisecond)
		agg.Record("security", nil, 50*time.Millisecond)

		stats, ok := agg.NotifierSnapshot("weather")
		require.True(t, ok)
		assert.EqualValues(t, 2, stats.Count)
		assert.EqualValues(t, 1, stats.Success)
		assert.EqualValues(t, 1, stats.Failure)
		assert.Equal(t, 100*time.Millisecond, stats.MinDuration)
		assert.Equal(t, 300*time.Millisecond, stats.MaxDuration)
		assert.Equal(t, 200*time.Millisecond, stats.AvgDuration)
		assert.False(t, stats.LastOutcome)
		assert.Equal(t, "smtp timeout", stats.LastError)
		assert.False(t, stats.LastAttempt.IsZero())
	})

	t.Run("success clears last error", func(t *testing.T) {
		t.Parallel()

		agg := metrics.NewAggregator()
		agg.Record("weather", errors.New("smtp timeout"), time.Millisecond)
		agg.Record("weather", nil, time.Millisecond)

		stats, ok := agg.NotifierSnapshot("weather")
		require.True(t, ok)
		assert.True(t, stats.LastOutcome)
		assert.Empty(t, stats.LastError)
	})

	t.Run("accumulates totals", func(t *testing.T) {
		t.Parallel()

		agg := metrics.NewAggregator()
		agg.Record("weather", nil, time.Millisecond)
		agg.Record("security", errors.New("sms gateway down"), time.Millisecond)

		snap := agg.Snapshot()
		assert.EqualValues(t, 2, snap.Totals.Count)
		assert.EqualValues(t, 1, snap.Totals.Success)
		assert.EqualValues(t, 1, snap.Totals.Failure)
	})

	t.Run("unknown notifier", func(t *testing.T) {
		t.Parallel()

		agg := metrics.NewAggregator()
		_, ok := agg.NotifierSnapshot("weather")
		assert.False(t, ok)
	})
}

func TestAggregatorSnapshotIsolation(t *testing.T) {
	t.Parallel()

	agg := metrics.NewAggregator()
	agg.Record("weather", nil, time.Millisecond)

	snap := agg.Snapshot()
	agg.Record("weather", errors.New("smtp timeout"), time.Millisecond)

	assert.EqualValues(t, 1, snap.Notifiers["weather"].Count)
	assert.EqualValues(t, 2, agg.Snapshot().Notifiers["weather"].Count)
}

func TestAggregatorReset(t *testing.T) {
	t.Parallel()

	agg := metrics.NewAggregator()
	agg.Record("weather", nil, time.Millisecond)
	agg.Reset()

	snap := agg.Snapshot()
	assert.Empty(t, snap.Notifiers)
	assert.Zero(t, snap.Totals.Count)
}

func TestAggregatorConcurrency(t *testing.T) {
	t.Parallel()

	agg := metrics.NewAggregator()
	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				agg.Record("weather", nil, time.Millisecond)
			}
		}()
	}
	wg.Wait()

	stats, ok := agg.NotifierSnapshot("weather")
	require.True(t, ok)
	assert.EqualValues(t, 1000, stats.Count)
}

func TestCollector(t *testing.T) {
	t.Parallel()

	agg := metrics.NewAggregator()
	agg.Record("weather", nil, 100*time.Millisecond)
	agg.Record("weather", errors.New("smtp timeout"), 200*time.Millisecond)

	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(metrics.NewCollector(agg)))

	families, err := reg.Gather()
	require.NoError(t, err)

	byName := make(map[string]float64)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				byName[mf.GetName()] = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				byName[mf.GetName()] = m.GetGauge().GetValue()
			}
		}
	}

	assert.Equal(t, 2.0, byName["campusalert_delivery_attempts_total"])
	assert.Equal(t, 1.0, byName["campusalert_delivery_success_total"])
	assert.Equal(t, 1.0, byName["campusalert_delivery_failure_total"])
	assert.InDelta(t, 0.2, byName["campusalert_delivery_duration_max_seconds"], 0.001)
}
