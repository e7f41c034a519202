package queue

import "errors"

var (
	// ErrQueueClosed is returned by Enqueue after the manager has stopped.
	ErrQueueClosed = errors.New("queue is closed")
	// ErrTaskNotFound is returned when a task id is unknown.
	ErrTaskNotFound = errors.New("task not found")
	// ErrNilProcessor is returned when a manager is built without a processor.
	ErrNilProcessor = errors.New("processor must not be nil")
	// ErrAlreadyStarted is returned by Start on a running manager.
	ErrAlreadyStarted = errors.New("manager already started")
	// ErrNotStarted is returned by Stop on a manager that never started.
	ErrNotStarted = errors.New("manager not started")
)
