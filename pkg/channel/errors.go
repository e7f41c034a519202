package channel

import "errors"

var (
	// ErrDeliveryFailed is returned when a channel could not deliver a message.
	ErrDeliveryFailed = errors.New("delivery failed")
	// ErrUnknownChannel is returned when no channel is registered under a name
	// and no fallback is available.
	ErrUnknownChannel = errors.New("unknown channel")
	// ErrMissingAddress is returned when the recipient lacks the contact
	// detail the channel requires.
	ErrMissingAddress = errors.New("missing address for channel")
)
