package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNoSlaProfile marks an entity with no resolvable SLA thresholds.
	ErrNoSlaProfile = errors.New("no sla profile")
	// ErrNoRecipient marks an entity with no resolvable notification recipient.
	ErrNoRecipient = errors.New("no active recipient")
	// ErrUnknownTemplate is returned by renderers for unregistered template ids.
	ErrUnknownTemplate = errors.New("unknown template")
)
