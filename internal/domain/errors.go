package domain

import "errors"

// Failure taxonomy surfaced to the adapter layer. Callers distinguish kinds
// with errors.Is; none of these are retried internally.
var (
	// ErrValidation marks missing or malformed caller input.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a lookup that matched no tracked data.
	ErrNotFound = errors.New("not found")

	// ErrProfileUnavailable marks an upstream identity that is absent or not
	// public. Nothing is persisted when it occurs.
	ErrProfileUnavailable = errors.New("profile missing or not public")

	// ErrConflict marks a registration for a username that already exists.
	ErrConflict = errors.New("already registered")
)
