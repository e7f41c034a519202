// Package campusalert is the asynchronous dispatch and resilience engine
// for campus emergency notifications.
//
// The Engine ties the pieces together: Submit validates a notification
// request and enqueues it on the task queue, worker goroutines route each
// task to the notifier for its alert type, and the notifier delivers to
// every recipient through preference resolution, translation, and the
// retry/circuit-breaker layer. Submission never waits for delivery;
// progress is observed through GetTask and Stats.
package campusalert
