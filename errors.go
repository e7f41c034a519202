package campusalert

import "errors"

var (
	// ErrUnknownNotifier is returned when a task names an alert type no
	// dispatcher is registered for.
	ErrUnknownNotifier = errors.New("unknown notifier")

	// ErrUnsupportedPolicy is returned by Configure when the policy value
	// is neither a retry policy nor a circuit breaker policy.
	ErrUnsupportedPolicy = errors.New("unsupported policy type")
)
