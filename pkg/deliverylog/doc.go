// Package deliverylog records every delivery attempt and doubles as the
// recipient-facing in-app inbox.
//
// Each Entry captures what was sent, to whom, over which channel, and
// whether it arrived. Recipients read their entries through the inbox
// operations (list, mark read, unread count), which is how the in-app
// channel surfaces alerts.
//
// Two Storage implementations are provided: MemoryStorage for tests and
// single-process deployments, and RedisStorage for deployments that need
// the log to survive restarts.
package deliverylog
