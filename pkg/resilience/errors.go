package resilience

import "errors"

var (
	// ErrCircuitOpen signals a fast-fail: the breaker for this key is open
	// and the cooldown has not elapsed, so no delivery attempt was made.
	ErrCircuitOpen = errors.New("circuit breaker is open")

	// ErrNilOperation is returned when a nil function is passed to Retry
	// or Registry.Execute.
	ErrNilOperation = errors.New("operation cannot be nil")

	// ErrUnknownPolicyKind is returned by ResetToDefaults for a kind that
	// is neither retry nor circuit breaker.
	ErrUnknownPolicyKind = errors.New("unknown policy kind")
)

// IsCircuitOpen checks if an error indicates the circuit breaker is open.
func IsCircuitOpen(err error) bool {
	return errors.Is(err, ErrCircuitOpen)
}
