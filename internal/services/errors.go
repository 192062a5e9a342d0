package services

import "errors"

var (
	// ErrInvalidName is returned when the name is missing.
	ErrInvalidName = errors.New("name is required")

	// ErrInvalidPrice is returned for a negative price.
	ErrInvalidPrice = errors.New("price must not be negative")

	// ErrInvalidDuration is returned for a non-positive duration.
	ErrInvalidDuration = errors.New("duration must be positive")

	// ErrNotFound is returned when a service does not exist.
	ErrNotFound = errors.New("service not found")
)
