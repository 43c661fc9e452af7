package backends

import "errors"

var (
	// ErrBackendNotFound is returned when creating a backend under an
	// unregistered name.
	ErrBackendNotFound = errors.New("backend not found")

	// ErrInvalidConfig is returned when a backend factory receives a
	// configuration of the wrong type or with missing fields.
	ErrInvalidConfig = errors.New("invalid backend configuration")
)
