package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector exposes aggregator statistics as Prometheus metrics. Register it
// with a prometheus.Registerer to serve the numbers over /metrics.
type Collector struct {
	agg *Aggregator

	attempts    *prometheus.Desc
	successes   *prometheus.Desc
	failures    *prometheus.Desc
	maxDuration *prometheus.Desc
	avgDuration *prometheus.Desc
}

// NewCollector creates a Prometheus collector over the given aggregator.
func NewCollector(agg *Aggregator) *Collector {
	labels := []string{"notifier"}
	return &Collector{
		agg: agg,
		attempts: prometheus.NewDesc(
			"campusalert_delivery_attempts_total",
			"Total delivery attempts per notifier type.",
			labels, nil,
		),
		successes: prometheus.NewDesc(
			"campusalert_delivery_success_total",
			"Successful deliveries per notifier type.",
			labels, nil,
		),
		failures: prometheus.NewDesc(
			"campusalert_delivery_failure_total",
			"Failed deliveries per notifier type.",
			labels, nil,
		),
		maxDuration: prometheus.NewDesc(
			"campusalert_delivery_duration_max_seconds",
			"Longest observed delivery duration per notifier type.",
			labels, nil,
		),
		avgDuration: prometheus.NewDesc(
			"campusalert_delivery_duration_avg_seconds",
			"Average delivery duration per notifier type.",
			labels, nil,
		),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.attempts
	ch <- c.successes
	ch <- c.failures
	ch <- c.maxDuration
	ch <- c.avgDuration
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	snap := c.agg.Snapshot()
	for name, stats := range snap.Notifiers {
		ch <- prometheus.MustNewConstMetric(c.attempts, prometheus.CounterValue, float64(stats.Count), name)
		ch <- prometheus.MustNewConstMetric(c.successes, prometheus.CounterValue, float64(stats.Success), name)
		ch <- prometheus.MustNewConstMetric(c.failures, prometheus.CounterValue, float64(stats.Failure), name)
		ch <- prometheus.MustNewConstMetric(c.maxDuration, prometheus.GaugeValue, stats.MaxDuration.Seconds(), name)
		ch <- prometheus.MustNewConstMetric(c.avgDuration, prometheus.GaugeValue, stats.AvgDuration.Seconds(), name)
	}
}
