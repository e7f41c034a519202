// Package queue decouples alert submission from delivery.
//
// Enqueue stores a Task, pushes it onto an in-memory FIFO, and returns the
// task id immediately; a fixed pool of workers dequeues in arrival order and
// invokes the registered processor. Task status moves strictly
// pending → processing → completed|failed and never leaves a terminal
// state. Worker panics and processor errors become failed tasks; they never
// kill the pool.
//
// The queue is single-process and in-memory. Terminal tasks stay readable
// until ClearCompleted garbage-collects them.
package queue
