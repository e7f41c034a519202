package metrics

import (
	"sync"
	"time"
)

// NotifierStats holds delivery statistics for one notifier type.
type NotifierStats struct {
	Count       int64         `json:"count"`
	Success     int64         `json:"success"`
	Failure     int64         `json:"failure"`
	MinDuration time.Duration `json:"min_duration"`
	MaxDuration time.Duration `json:"max_duration"`
	AvgDuration time.Duration `json:"avg_duration"`
	LastAttempt time.Time     `json:"last_attempt"`
	LastOutcome bool          `json:"last_outcome"`
	LastError   string        `json:"last_error,omitempty"`

	totalDuration time.Duration
}

// Totals holds engine-wide counters across all notifiers.
type Totals struct {
	Count   int64 `json:"count"`
	Success int64 `json:"success"`
	Failure int64 `json:"failure"`
}

// Snapshot is a point-in-time copy of all statistics.
type Snapshot struct {
	Notifiers map[string]NotifierStats `json:"notifiers"`
	Totals    Totals                   `json:"totals"`
}

// Aggregator accumulates delivery statistics. Safe for concurrent use.
type Aggregator struct {
	mu        sync.RWMutex
	notifiers map[string]*NotifierStats
	totals    Totals
}

// NewAggregator creates an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{notifiers: make(map[string]*NotifierStats)}
}

// Record registers one delivery attempt for the named notifier. A nil err
// counts as success. It is called for every attempt, successful or not, so
// counts always reflect work done.
func (a *Aggregator) Record(notifier string, err error, duration time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()

	stats, ok := a.notifiers[notifier]
	if !ok {
		stats = &NotifierStats{}
		a.notifiers[notifier] = stats
	}

	stats.Count++
	if err == nil {
		stats.Success++
		a.totals.Success++
		stats.LastError = ""
	} else {
		stats.Failure++
		a.totals.Failure++
		stats.LastError = err.Error()
	}
	a.totals.Count++

	if stats.Count == 1 || duration < stats.MinDuration {
		stats.MinDuration = duration
	}
	if duration > stats.MaxDuration {
		stats.MaxDuration = duration
	}
	stats.totalDuration += duration
	stats.AvgDuration = stats.totalDuration / time.Duration(stats.Count)
	stats.LastAttempt = time.Now()
	stats.LastOutcome = err == nil
}

// Snapshot returns a deep copy of the current statistics.
func (a *Aggregator) Snapshot() Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()

	snap := Snapshot{
		Notifiers: make(map[string]NotifierStats, len(a.notifiers)),
		Totals:    a.totals,
	}
	for name, stats := range a.notifiers {
		snap.Notifiers[name] = *stats
	}
	return snap
}

// NotifierSnapshot returns the statistics for one notifier and whether any
// attempts were recorded for it.
func (a *Aggregator) NotifierSnapshot(notifier string) (NotifierStats, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	stats, ok := a.notifiers[notifier]
	if !ok {
		return NotifierStats{}, false
	}
	return *stats, true
}

// Reset clears all statistics.
func (a *Aggregator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.notifiers = make(map[string]*NotifierStats)
	a.totals = Totals{}
}
