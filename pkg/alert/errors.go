package alert

import "errors"

// Common validation errors. Submission code checks these before a task is
// ever enqueued; a worker never sees a malformed alert.
var (
	ErrUnknownType          = errors.New("unknown alert type")
	ErrInvalidPriority      = errors.New("invalid priority: accepted values are CRITICAL, HIGH, NORMAL")
	ErrMissingTitle         = errors.New("alert title is required")
	ErrMissingMessage       = errors.New("alert message is required")
	ErrInvalidRecipientID   = errors.New("invalid recipient id: letters, digits, - and _ between 5 and 20 characters")
	ErrMissingRecipientName = errors.New("recipient name is required")
	ErrInvalidEmail         = errors.New("invalid email address format")
	ErrInvalidPhone         = errors.New("invalid international phone number")
	ErrInvalidLanguage      = errors.New("invalid language code")
)
