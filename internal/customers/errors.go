package customers

import "errors"

var (
	// ErrInvalidName is returned when the name is missing.
	ErrInvalidName = errors.New("name is required")

	// ErrNotFound is returned when a customer does not exist.
	ErrNotFound = errors.New("customer not found")
)
