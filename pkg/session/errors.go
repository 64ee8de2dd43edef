package session

import "errors"

var (
	// ErrValidation is returned for malformed import payloads and unknown
	// format names. Callers can recover by correcting the input.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when an operation requires an existing session,
	// such as export. Deletion of an absent session is not an error; it
	// reports false instead.
	ErrNotFound = errors.New("session not found")
)
