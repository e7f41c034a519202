// Package metrics aggregates per-notifier delivery statistics.
//
// The Aggregator tracks attempt counts, success/failure splits, and
// delivery duration extremes for each notifier type, plus engine-wide
// totals. Snapshot returns deep copies so callers can render or export
// stats without racing the dispatch path.
//
// Collector exposes the same numbers to Prometheus.
package metrics
