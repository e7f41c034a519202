package notifier

import (
	"errors"
	"fmt"
)

var (
	// ErrPreconditionFailed aborts a whole dispatch batch before any
	// delivery begins. It is the only notifier error that fails a task.
	ErrPreconditionFailed = errors.New("precondition failed")

	// ErrConfirmationRequired is the precondition failure raised when a
	// confirmation-gated alert has not been confirmed.
	ErrConfirmationRequired = fmt.Errorf("%w: confirmation required", ErrPreconditionFailed)

	// ErrNilHooks is returned when a dispatcher is constructed without hooks.
	ErrNilHooks = errors.New("hooks must not be nil")

	// ErrNilDependency is returned when a required collaborator is missing.
	ErrNilDependency = errors.New("missing dependency")
)
