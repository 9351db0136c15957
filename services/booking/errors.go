package booking

import "errors"

var (
	// ErrInvalidInput reports malformed booking request data.
	ErrInvalidInput = errors.New("invalid booking input")
	// ErrInvalidStateTransition reports a lifecycle rule violation.
	ErrInvalidStateTransition = errors.New("invalid state transition")
	// ErrUnauthorized reports an actor lacking rights for the transition.
	ErrUnauthorized = errors.New("actor not authorized for transition")
	// ErrConcurrentModification reports losing an optimistic write race
	// after the bounded retries were exhausted.
	ErrConcurrentModification = errors.New("booking modified concurrently")
	// ErrNotFound reports a missing booking or station reference.
	ErrNotFound = errors.New("not found")
)
