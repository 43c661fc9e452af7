package bucket

import (
	"errors"
	"fmt"
)

var (
	// ErrStateParsing is returned when stored bucket state cannot be decoded.
	ErrStateParsing = errors.New("failed to parse bucket state")

	// ErrConcurrentAccess is returned when the atomic update keeps losing
	// against concurrent writers after all retries.
	ErrConcurrentAccess = errors.New("concurrent access conflict after retries")
)

func NewInvalidCapacityError(capacity int) error {
	return fmt.Errorf("capacity must be positive, got %d", capacity)
}

func NewInvalidRefillRateError(rate float64) error {
	return fmt.Errorf("refill rate must be positive, got %g", rate)
}

func NewStateRetrievalError(err error) error {
	return fmt.Errorf("failed to retrieve bucket state: %w", err)
}

func NewStateSaveError(err error) error {
	return fmt.Errorf("failed to save bucket state: %w", err)
}

func NewContextCancelledError(err error) error {
	return fmt.Errorf("bucket operation cancelled: %w", err)
}
