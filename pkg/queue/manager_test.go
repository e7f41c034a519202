package queue_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusalert/campusalert/pkg/queue"
)

func waitForStatus(t *testing.T, m *queue.Manager, id uuid.UUID, want queue.Status) queue.Task {
	t.Helper()

	deadline := time.After(5 * time.Second)
	for {
		task, err := m.GetTask(id)
		require.NoError(t, err)
		if task.Status == want {
			return task
		}
		select {
		case <-deadline:
			t.Fatalf("task %s never reached %s, last status %s", id, want, task.Status)
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestManagerEnqueue(t *testing.T) {
	t.Parallel()

	t.Run("returns before processing completes", func(t *testing.T) {
		t.Parallel()

		started := make(chan struct{})
		release := make(chan struct{})
		m, err := queue.New(func(context.Context, queue.Task) (json.RawMessage, error) {
			close(started)
			<-release
			return nil, nil
		})
		require.NoError(t, err)
		require.NoError(t, m.Start(context.Background()))
		defer func() {
			close(release)
			_ = m.Stop()
		}()

		id, err := m.Enqueue("weather", json.RawMessage(`{}`))
		require.NoError(t, err)
		require.NotEqual(t, uuid.Nil, id)

		// Enqueue returned while the processor is still blocked.
		<-started
		task, err := m.GetTask(id)
		require.NoError(t, err)
		assert.NotEqual(t, queue.StatusCompleted, task.Status)
	})

	t.Run("fails after stop", func(t *testing.T) {
		t.Parallel()

		m, err := queue.New(func(context.Context, queue.Task) (json.RawMessage, error) {
			return nil, nil
		})
		require.NoError(t, err)
		require.NoError(t, m.Start(context.Background()))
		require.NoError(t, m.Stop())

		_, err = m.Enqueue("weather", nil)
		assert.ErrorIs(t, err, queue.ErrQueueClosed)
	})

	t.Run("nil processor rejected", func(t *testing.T) {
		t.Parallel()

		_, err := queue.New(nil)
		assert.ErrorIs(t, err, queue.ErrNilProcessor)
	})
}

func TestManagerLifecycle(t *testing.T) {
	t.Parallel()

	t.Run("status transitions are monotonic", func(t *testing.T) {
		t.Parallel()

		m, err := queue.New(func(context.Context, queue.Task) (json.RawMessage, error) {
			return json.RawMessage(`{"notified":2}`), nil
		})
		require.NoError(t, err)
		require.NoError(t, m.Start(context.Background()))
		defer func() { _ = m.Stop() }()

		id, err := m.Enqueue("weather", nil)
		require.NoError(t, err)

		task := waitForStatus(t, m, id, queue.StatusCompleted)
		assert.JSONEq(t, `{"notified":2}`, string(task.Result))
		require.NotNil(t, task.StartedAt)
		require.NotNil(t, task.CompletedAt)
		assert.False(t, task.StartedAt.After(*task.CompletedAt))
		assert.False(t, task.CreatedAt.After(*task.StartedAt))
	})

	t.Run("processor error fails the task not the pool", func(t *testing.T) {
		t.Parallel()

		var calls sync.Map
		m, err := queue.New(func(_ context.Context, task queue.Task) (json.RawMessage, error) {
			calls.Store(task.ID, true)
			if task.Type == "broken" {
				return nil, errors.New("dispatch exploded")
			}
			return nil, nil
		})
		require.NoError(t, err)
		require.NoError(t, m.Start(context.Background()))
		defer func() { _ = m.Stop() }()

		bad, err := m.Enqueue("broken", nil)
		require.NoError(t, err)
		good, err := m.Enqueue("weather", nil)
		require.NoError(t, err)

		failed := waitForStatus(t, m, bad, queue.StatusFailed)
		assert.Contains(t, failed.Error, "dispatch exploded")

		waitForStatus(t, m, good, queue.StatusCompleted)
	})

	t.Run("panic becomes failed task", func(t *testing.T) {
		t.Parallel()

		m, err := queue.New(func(_ context.Context, task queue.Task) (json.RawMessage, error) {
			if task.Type == "panicky" {
				panic("boom")
			}
			return nil, nil
		})
		require.NoError(t, err)
		require.NoError(t, m.Start(context.Background()))
		defer func() { _ = m.Stop() }()

		id, err := m.Enqueue("panicky", nil)
		require.NoError(t, err)

		task := waitForStatus(t, m, id, queue.StatusFailed)
		assert.Contains(t, task.Error, "panic")

		// Pool survives the panic.
		ok, err := m.Enqueue("weather", nil)
		require.NoError(t, err)
		waitForStatus(t, m, ok, queue.StatusCompleted)
	})

	t.Run("double start rejected", func(t *testing.T) {
		t.Parallel()

		m, err := queue.New(func(context.Context, queue.Task) (json.RawMessage, error) {
			return nil, nil
		})
		require.NoError(t, err)
		require.NoError(t, m.Start(context.Background()))
		defer func() { _ = m.Stop() }()

		assert.ErrorIs(t, m.Start(context.Background()), queue.ErrAlreadyStarted)
	})

	t.Run("stop before start rejected", func(t *testing.T) {
		t.Parallel()

		m, err := queue.New(func(context.Context, queue.Task) (json.RawMessage, error) {
			return nil, nil
		})
		require.NoError(t, err)
		assert.ErrorIs(t, m.Stop(), queue.ErrNotStarted)
	})

	t.Run("context cancellation closes the queue", func(t *testing.T) {
		t.Parallel()

		m, err := queue.New(func(context.Context, queue.Task) (json.RawMessage, error) {
			return nil, nil
		})
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		require.NoError(t, m.Start(ctx))
		cancel()

		require.Eventually(t, func() bool {
			_, err := m.Enqueue("weather", nil)
			return errors.Is(err, queue.ErrQueueClosed)
		}, time.Second, 5*time.Millisecond)
	})
}

func TestManagerGetTask(t *testing.T) {
	t.Parallel()

	m, err := queue.New(func(context.Context, queue.Task) (json.RawMessage, error) {
		return nil, nil
	})
	require.NoError(t, err)

	_, err = m.GetTask(uuid.New())
	assert.ErrorIs(t, err, queue.ErrTaskNotFound)
}

func TestManagerStats(t *testing.T) {
	t.Parallel()

	m, err := queue.New(func(context.Context, queue.Task) (json.RawMessage, error) {
		return nil, nil
	}, queue.WithWorkers(3))
	require.NoError(t, err)

	stats := m.Stats()
	assert.Equal(t, 3, stats.Workers)
	assert.False(t, stats.Running)

	require.NoError(t, m.Start(context.Background()))
	defer func() { _ = m.Stop() }()

	id, err := m.Enqueue("weather", nil)
	require.NoError(t, err)
	waitForStatus(t, m, id, queue.StatusCompleted)

	stats = m.Stats()
	assert.True(t, stats.Running)
	assert.EqualValues(t, 1, stats.TotalEnqueued)
	assert.EqualValues(t, 1, stats.TotalProcessed)
	assert.Equal(t, 1, stats.Completed)
}

func TestManagerClearCompleted(t *testing.T) {
	t.Parallel()

	m, err := queue.New(func(context.Context, queue.Task) (json.RawMessage, error) {
		return nil, nil
	})
	require.NoError(t, err)
	require.NoError(t, m.Start(context.Background()))
	defer func() { _ = m.Stop() }()

	id, err := m.Enqueue("weather", nil)
	require.NoError(t, err)
	waitForStatus(t, m, id, queue.StatusCompleted)

	// Recent terminal tasks survive a long retention window.
	assert.Zero(t, m.ClearCompleted(time.Hour))

	// A zero window collects every terminal task.
	assert.Equal(t, 1, m.ClearCompleted(0))
	_, err = m.GetTask(id)
	assert.ErrorIs(t, err, queue.ErrTaskNotFound)
}

func TestManagerFIFO(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var order []string

	m, err := queue.New(func(_ context.Context, task queue.Task) (json.RawMessage, error) {
		mu.Lock()
		order = append(order, task.Type)
		mu.Unlock()
		return nil, nil
	}, queue.WithWorkers(1))
	require.NoError(t, err)

	// Enqueue before starting so arrival order is fixed.
	var last uuid.UUID
	for _, name := range []string{"first", "second", "third"} {
		id, err := m.Enqueue(name, nil)
		require.NoError(t, err)
		last = id
	}

	require.NoError(t, m.Start(context.Background()))
	defer func() { _ = m.Stop() }()

	waitForStatus(t, m, last, queue.StatusCompleted)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"first", "second", "third"}, order)
}
