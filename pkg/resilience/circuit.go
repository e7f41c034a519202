package resilience

import (
	"sync"
	"time"
)

// CircuitState represents the current state of a circuit breaker.
type CircuitState int

const (
	// CircuitClosed allows calls to pass through.
	CircuitClosed CircuitState = iota
	// CircuitOpen rejects all calls until the cooldown elapses.
	CircuitOpen
	// CircuitHalfOpen allows exactly one probing call to test recovery.
	CircuitHalfOpen
)

// String returns the string representation of the circuit state.
func (s CircuitState) String() string {
	switch s {
	case CircuitClosed:
		return "closed"
	case CircuitOpen:
		return "open"
	case CircuitHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreaker isolates a repeatedly failing operation. Safe for
// concurrent use.
//
// Closed circuits count consecutive failures and open once the policy
// threshold is reached. Open circuits fail fast until the cooldown elapses,
// after which a single probing call is let through: success closes the
// circuit and clears the counter, failure reopens it and restarts the
// cooldown.
type CircuitBreaker struct {
	mu sync.RWMutex

	policy CircuitBreakerPolicy

	state           CircuitState
	failures        int
	lastFailureTime time.Time
	probing         bool
}

// NewCircuitBreaker creates a breaker governed by the given policy.
// Zero policy fields fall back to the package defaults.
func NewCircuitBreaker(policy CircuitBreakerPolicy) *CircuitBreaker {
	return &CircuitBreaker{
		policy: policy.normalized(),
		state:  CircuitClosed,
	}
}

// Allow reports whether a call may proceed. It takes the write lock because
// an open circuit whose cooldown elapsed transitions to half-open here, and
// only the first caller after that transition gets the probe slot.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case CircuitClosed:
		return true

	case CircuitOpen:
		if time.Since(cb.lastFailureTime) >= cb.policy.Cooldown {
			cb.state = CircuitHalfOpen
			cb.probing = true
			return true
		}
		return false

	case CircuitHalfOpen:
		// The probe slot is already taken; reject until it resolves.
		if cb.probing {
			return false
		}
		cb.probing = true
		return true

	default:
		return false
	}
}

// RecordSuccess records a successful call and may close the circuit.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failures = 0
	if cb.state == CircuitHalfOpen {
		cb.state = CircuitClosed
	}
	cb.probing = false
}

// RecordFailure records a failed call and may open the circuit.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.lastFailureTime = time.Now()

	switch cb.state {
	case CircuitClosed:
		cb.failures++
		if cb.failures >= cb.policy.Threshold {
			cb.state = CircuitOpen
		}
	case CircuitHalfOpen:
		// The probe failed; reopen and restart the cooldown.
		cb.state = CircuitOpen
		cb.failures = cb.policy.Threshold
	}
	cb.probing = false
}

// State returns the current state, accounting for an elapsed cooldown.
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	if cb.state == CircuitOpen && time.Since(cb.lastFailureTime) >= cb.policy.Cooldown {
		return CircuitHalfOpen
	}
	return cb.state
}

// Reset returns the breaker to the closed state with a clean counter.
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.state = CircuitClosed
	cb.failures = 0
	cb.probing = false
	cb.lastFailureTime = time.Time{}
}

// CircuitStats provides visibility into breaker state for monitoring.
type CircuitStats struct {
	State           string
	Failures        int
	LastFailureTime time.Time
}

// Stats returns the current statistics of the circuit breaker.
func (cb *CircuitBreaker) Stats() CircuitStats {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	return CircuitStats{
		State:           cb.state.String(),
		Failures:        cb.failures,
		LastFailureTime: cb.lastFailureTime,
	}
}
