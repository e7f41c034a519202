package resilience

import (
	"math"
	"math/rand"
	"time"
)

// BackoffStrategy computes the pause before a retry. Attempt 1 is the first
// retry, i.e. the pause before the second raw attempt. Implementations must
// be safe for concurrent use.
type BackoffStrategy interface {
	NextInterval(attempt int) time.Duration
}

// ExponentialBackoff grows the delay geometrically, with optional jitter so
// many recipients retrying at once don't hit a recovering transport in
// lockstep.
type ExponentialBackoff struct {
	// InitialInterval is the delay before the first retry. Zero means 1s.
	InitialInterval time.Duration
	// MaxInterval caps the delay. Zero means 30s.
	MaxInterval time.Duration
	// Multiplier is the growth factor per retry. Zero means 2.
	Multiplier float64
	// JitterFactor randomizes each delay within ±JitterFactor. Zero keeps
	// the schedule deterministic.
	JitterFactor float64
}

// NextInterval returns min(InitialInterval * Multiplier^(attempt-1), MaxInterval),
// jittered when JitterFactor is set.
func (e ExponentialBackoff) NextInterval(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}

	initial := e.InitialInterval
	if initial <= 0 {
		initial = time.Second
	}
	ceiling := e.MaxInterval
	if ceiling <= 0 {
		ceiling = 30 * time.Second
	}
	multiplier := e.Multiplier
	if multiplier <= 0 {
		multiplier = 2
	}

	interval := float64(initial) * math.Pow(multiplier, float64(attempt-1))
	if e.JitterFactor > 0 {
		interval *= 1 + (rand.Float64()*2-1)*e.JitterFactor
	}
	if interval > float64(ceiling) {
		interval = float64(ceiling)
	}
	return time.Duration(interval)
}

// LinearBackoff grows the delay by a fixed step per retry.
type LinearBackoff struct {
	// Interval is the step size. Zero means 1s.
	Interval time.Duration
	// MaxInterval caps the delay. Zero means 30s.
	MaxInterval time.Duration
}

// NextInterval returns min(Interval * attempt, MaxInterval).
func (l LinearBackoff) NextInterval(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}

	interval := l.Interval
	if interval <= 0 {
		interval = time.Second
	}
	ceiling := l.MaxInterval
	if ceiling <= 0 {
		ceiling = 30 * time.Second
	}

	delay := interval * time.Duration(attempt)
	if delay > ceiling {
		delay = ceiling
	}
	return delay
}

// FixedBackoff waits the same amount before every retry.
type FixedBackoff struct {
	Interval time.Duration
}

// NextInterval returns Interval for every retry.
func (f FixedBackoff) NextInterval(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	return f.Interval
}
