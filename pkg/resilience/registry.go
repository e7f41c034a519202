package resilience

import (
	"context"
	"sync"
)

// Registry keeps one circuit breaker and one retry policy per operation key
// (typically a notifier name) and applies both around a call. Policies can
// be replaced at runtime; Execute always works from the snapshot taken when
// the call starts, so a reconfiguration never becomes visible mid-dispatch.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*entry

	defaultRetry   RetryPolicy
	defaultBreaker CircuitBreakerPolicy
}

type entry struct {
	mu      sync.RWMutex
	retry   RetryPolicy
	breaker *CircuitBreaker
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithDefaultRetryPolicy overrides the retry policy new keys start with.
func WithDefaultRetryPolicy(p RetryPolicy) RegistryOption {
	return func(r *Registry) { r.defaultRetry = p.normalized() }
}

// WithDefaultCircuitBreakerPolicy overrides the breaker policy new keys
// start with.
func WithDefaultCircuitBreakerPolicy(p CircuitBreakerPolicy) RegistryOption {
	return func(r *Registry) { r.defaultBreaker = p.normalized() }
}

// NewRegistry creates a Registry with package-default policies.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		entries:        make(map[string]*entry),
		defaultRetry:   DefaultRetryPolicy(),
		defaultBreaker: DefaultCircuitBreakerPolicy(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// entryFor returns the entry for key, creating it lazily.
func (r *Registry) entryFor(key string) *entry {
	r.mu.RLock()
	e, ok := r.entries[key]
	r.mu.RUnlock()
	if ok {
		return e
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok = r.entries[key]; ok {
		return e
	}
	e = &entry{
		retry:   r.defaultRetry,
		breaker: NewCircuitBreaker(r.defaultBreaker),
	}
	r.entries[key] = e
	return e
}

// Execute runs fn under the breaker and retry policy registered for key.
//
// When the breaker is open the call fails fast with ErrCircuitOpen and fn is
// never invoked. Otherwise the whole retry sequence counts as a single gated
// call: its final outcome is what the breaker records.
func (r *Registry) Execute(ctx context.Context, key string, fn Operation) error {
	if fn == nil {
		return ErrNilOperation
	}

	e := r.entryFor(key)

	e.mu.RLock()
	retry := e.retry
	breaker := e.breaker
	e.mu.RUnlock()

	if !breaker.Allow() {
		return ErrCircuitOpen
	}

	if err := Retry(ctx, retry, fn); err != nil {
		breaker.RecordFailure()
		return err
	}
	breaker.RecordSuccess()
	return nil
}

// ConfigureRetry replaces the retry policy for key.
func (r *Registry) ConfigureRetry(key string, p RetryPolicy) {
	e := r.entryFor(key)
	e.mu.Lock()
	e.retry = p.normalized()
	e.mu.Unlock()
}

// ConfigureCircuitBreaker replaces the breaker policy for key. The breaker
// state is rebuilt from scratch: changing thresholds mid-incident is an
// operator action that intentionally clears accumulated failures.
func (r *Registry) ConfigureCircuitBreaker(key string, p CircuitBreakerPolicy) {
	e := r.entryFor(key)
	e.mu.Lock()
	e.breaker = NewCircuitBreaker(p)
	e.mu.Unlock()
}

// ResetToDefaults restores the named policy kind for key to the registry
// defaults.
func (r *Registry) ResetToDefaults(key string, kind PolicyKind) error {
	switch kind {
	case PolicyRetry:
		r.ConfigureRetry(key, r.defaultRetry)
	case PolicyCircuitBreaker:
		r.ConfigureCircuitBreaker(key, r.defaultBreaker)
	default:
		return ErrUnknownPolicyKind
	}
	return nil
}

// RetryPolicyFor returns the retry policy currently registered for key.
func (r *Registry) RetryPolicyFor(key string) RetryPolicy {
	e := r.entryFor(key)
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.retry
}

// BreakerStats returns the breaker statistics for key.
func (r *Registry) BreakerStats(key string) CircuitStats {
	e := r.entryFor(key)
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.breaker.Stats()
}
