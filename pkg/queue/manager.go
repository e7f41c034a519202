package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// DefaultWorkers is the pool size when WithWorkers is not given.
const DefaultWorkers = 2

// Processor executes one task and returns its result payload.
type Processor func(ctx context.Context, task Task) (json.RawMessage, error)

// ManagerOption customizes a Manager.
type ManagerOption func(*Manager)

// WithWorkers sets the worker pool size.
func WithWorkers(n int) ManagerOption {
	return func(m *Manager) {
		if n > 0 {
			m.workers = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// Manager owns the task map, the pending FIFO, and the worker pool.
type Manager struct {
	processor Processor
	workers   int
	logger    *slog.Logger

	mu      sync.Mutex
	cond    *sync.Cond
	tasks   map[uuid.UUID]*Task
	pending []uuid.UUID
	closed  bool
	started bool

	wg sync.WaitGroup

	totalEnqueued  atomic.Int64
	totalProcessed atomic.Int64
	totalFailed    atomic.Int64
}

// New creates a manager. Workers do not run until Start is called.
func New(processor Processor, opts ...ManagerOption) (*Manager, error) {
	if processor == nil {
		return nil, ErrNilProcessor
	}

	m := &Manager{
		processor: processor,
		workers:   DefaultWorkers,
		logger:    slog.New(slog.DiscardHandler),
		tasks:     make(map[uuid.UUID]*Task),
	}
	m.cond = sync.NewCond(&m.mu)
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Start launches the worker pool. Cancelling ctx stops the manager the same
// way Stop does.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return ErrAlreadyStarted
	}
	if m.closed {
		m.mu.Unlock()
		return ErrQueueClosed
	}
	m.started = true
	m.mu.Unlock()

	for i := range m.workers {
		m.wg.Add(1)
		go m.worker(ctx, i)
	}

	go func() {
		<-ctx.Done()
		m.close()
	}()

	m.logger.Info("queue manager started", "workers", m.workers)
	return nil
}

// Stop closes the queue and waits for workers to finish their current task.
// Pending tasks stay pending; subsequent Enqueue calls fail with
// ErrQueueClosed.
func (m *Manager) Stop() error {
	m.mu.Lock()
	if !m.started {
		m.mu.Unlock()
		return ErrNotStarted
	}
	m.mu.Unlock()

	m.close()
	m.wg.Wait()
	m.logger.Info("queue manager stopped")
	return nil
}

func (m *Manager) close() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	m.cond.Broadcast()
}

// Enqueue stores a task and returns its id without waiting for processing.
func (m *Manager) Enqueue(taskType string, payload json.RawMessage) (uuid.UUID, error) {
	task := &Task{
		ID:        uuid.New(),
		Type:      taskType,
		Payload:   payload,
		Status:    StatusPending,
		CreatedAt: time.Now(),
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return uuid.Nil, ErrQueueClosed
	}
	m.tasks[task.ID] = task
	m.pending = append(m.pending, task.ID)
	m.mu.Unlock()

	m.totalEnqueued.Add(1)
	m.cond.Signal()

	m.logger.Debug("task enqueued", "task_id", task.ID, "type", taskType)
	return task.ID, nil
}

// GetTask returns a snapshot copy of the task.
func (m *Manager) GetTask(id uuid.UUID) (Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.tasks[id]
	if !ok {
		return Task{}, ErrTaskNotFound
	}
	return *task, nil
}

// Stats describes the queue at a point in time.
type Stats struct {
	Pending        int   `json:"pending"`
	Processing     int   `json:"processing"`
	Completed      int   `json:"completed"`
	Failed         int   `json:"failed"`
	QueueLength    int   `json:"queue_length"`
	Workers        int   `json:"workers"`
	Running        bool  `json:"running"`
	TotalEnqueued  int64 `json:"total_enqueued"`
	TotalProcessed int64 `json:"total_processed"`
	TotalFailed    int64 `json:"total_failed"`
}

// Stats returns current queue statistics.
func (m *Manager) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	stats := Stats{
		QueueLength:    len(m.pending),
		Workers:        m.workers,
		Running:        m.started && !m.closed,
		TotalEnqueued:  m.totalEnqueued.Load(),
		TotalProcessed: m.totalProcessed.Load(),
		TotalFailed:    m.totalFailed.Load(),
	}
	for _, task := range m.tasks {
		switch task.Status {
		case StatusPending:
			stats.Pending++
		case StatusProcessing:
			stats.Processing++
		case StatusCompleted:
			stats.Completed++
		case StatusFailed:
			stats.Failed++
		}
	}
	return stats
}

// ClearCompleted removes terminal tasks that finished more than olderThan
// ago and returns how many were removed.
func (m *Manager) ClearCompleted(olderThan time.Duration) int {
	cutoff := time.Now().Add(-olderThan)

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, task := range m.tasks {
		if !task.Status.Terminal() {
			continue
		}
		if task.CompletedAt != nil && task.CompletedAt.Before(cutoff) {
			delete(m.tasks, id)
			removed++
		}
	}
	return removed
}

// worker is the long-lived processing loop. It exits when the queue closes.
func (m *Manager) worker(ctx context.Context, n int) {
	defer m.wg.Done()

	log := m.logger.With("worker", n)
	for {
		id, ok := m.dequeue()
		if !ok {
			log.Debug("worker exiting")
			return
		}
		m.process(ctx, id, log)
	}
}

// dequeue blocks until a task is available or the queue closes. Closing wins
// over pending work: shutdown stops workers after their current task.
func (m *Manager) dequeue() (uuid.UUID, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for len(m.pending) == 0 && !m.closed {
		m.cond.Wait()
	}
	if m.closed {
		return uuid.Nil, false
	}

	id := m.pending[0]
	m.pending = m.pending[1:]
	return id, true
}

// process runs one task through the processor, converting any error or panic
// into a terminal failed state. A worker never lets a failure escape.
func (m *Manager) process(ctx context.Context, id uuid.UUID, log *slog.Logger) {
	snapshot, ok := m.markProcessing(id)
	if !ok {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error("processor panicked", "task_id", id, "panic", r)
			m.markFailed(id, fmt.Sprintf("panic: %v", r))
		}
	}()

	start := time.Now()
	result, err := m.processor(ctx, snapshot)
	duration := time.Since(start)

	if err != nil {
		log.Warn("task failed", "task_id", id, "duration", duration, "error", err)
		m.markFailed(id, err.Error())
		return
	}

	log.Info("task completed", "task_id", id, "duration", duration)
	m.markCompleted(id, result)
}

func (m *Manager) markProcessing(id uuid.UUID) (Task, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.tasks[id]
	if !ok || task.Status != StatusPending {
		return Task{}, false
	}
	now := time.Now()
	task.Status = StatusProcessing
	task.StartedAt = &now
	return *task, true
}

func (m *Manager) markCompleted(id uuid.UUID, result json.RawMessage) {
	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.tasks[id]
	if !ok || task.Status != StatusProcessing {
		return
	}
	now := time.Now()
	task.Status = StatusCompleted
	task.CompletedAt = &now
	task.Result = result
	m.totalProcessed.Add(1)
}

func (m *Manager) markFailed(id uuid.UUID, errMsg string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.tasks[id]
	if !ok || task.Status.Terminal() {
		return
	}
	now := time.Now()
	task.Status = StatusFailed
	task.CompletedAt = &now
	task.Error = errMsg
	m.totalFailed.Add(1)
}
