package domain

import "errors"

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is returned when a record violates its invariants.
	ErrInvalidInput = errors.New("invalid input")
)
