package appointments

import "errors"

var (
	// ErrNotFound is returned when an appointment does not exist.
	ErrNotFound = errors.New("appointment not found")

	// ErrInvalidStatus is returned for an unknown status value.
	ErrInvalidStatus = errors.New("invalid appointment status")

	// ErrInvalidTransition is returned when a status change is not allowed
	// from the appointment's current state.
	ErrInvalidTransition = errors.New("status transition not allowed")
)
