package apperrors

import "errors"

var (
	// ErrUnauthenticated means the caller supplied no owner id. Caller-side
	// bug, never retried.
	ErrUnauthenticated = errors.New("owner id is required")

	// ErrNotFound covers both a genuinely missing record and a record owned
	// by somebody else, so existence of foreign records never leaks.
	ErrNotFound = errors.New("not found")

	ErrInvalidInput = errors.New("invalid input")
)
