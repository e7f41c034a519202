package resilience

import (
	"math"
	"time"
)

// RetryPolicy controls how many raw attempts one gated call performs and how
// long to wait between them. The wait before attempt n (n >= 2) is
// Delay * Backoff^(n-2), so {3, 1s, 2.0} attempts at roughly t=0, t=1s, t=3s.
type RetryPolicy struct {
	Attempts int
	Delay    time.Duration
	Backoff  float64

	// Strategy overrides the exponential schedule derived from Delay and
	// Backoff. Leave nil for the default.
	Strategy BackoffStrategy
}

// DefaultRetryPolicy mirrors the historical dispatch defaults.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Attempts: 3, Delay: time.Second, Backoff: 2}
}

// normalized fills zero fields with safe values so a partially configured
// policy still behaves sensibly.
func (p RetryPolicy) normalized() RetryPolicy {
	if p.Attempts <= 0 {
		p.Attempts = 1
	}
	if p.Delay <= 0 {
		p.Delay = time.Second
	}
	if p.Backoff <= 0 {
		p.Backoff = 1
	}
	return p
}

// delayBefore returns the pause preceding the given retry (retry 1 is the
// second raw attempt).
func (p RetryPolicy) delayBefore(retry int) time.Duration {
	if retry <= 0 {
		return 0
	}
	if p.Strategy != nil {
		return p.Strategy.NextInterval(retry)
	}
	return time.Duration(float64(p.Delay) * math.Pow(p.Backoff, float64(retry-1)))
}

// CircuitBreakerPolicy controls when a breaker opens and how long it stays
// open before allowing a single probing attempt.
type CircuitBreakerPolicy struct {
	Threshold int
	Cooldown  time.Duration
}

// DefaultCircuitBreakerPolicy mirrors the historical dispatch defaults.
func DefaultCircuitBreakerPolicy() CircuitBreakerPolicy {
	return CircuitBreakerPolicy{Threshold: 3, Cooldown: 5 * time.Second}
}

func (p CircuitBreakerPolicy) normalized() CircuitBreakerPolicy {
	if p.Threshold <= 0 {
		p.Threshold = 3
	}
	if p.Cooldown <= 0 {
		p.Cooldown = 5 * time.Second
	}
	return p
}

// PolicyKind selects which policy a ResetToDefaults call targets.
type PolicyKind string

const (
	PolicyRetry          PolicyKind = "retry"
	PolicyCircuitBreaker PolicyKind = "circuit_breaker"
)
