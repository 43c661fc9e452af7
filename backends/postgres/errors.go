package postgres

import (
	"errors"
	"fmt"
)

var (
	ErrConnectionFailed = errors.New("failed to connect to postgres")
	ErrPingFailed       = errors.New("failed to ping postgres")
	ErrTableCreation    = errors.New("failed to create key-value table")
	ErrSetFailed        = errors.New("failed to set key")
	ErrDeleteFailed     = errors.New("failed to delete key")
)

func NewConnectionFailedError(err error) error {
	return fmt.Errorf("failed to connect to postgres: %w", err)
}

func NewPingFailedError(err error) error {
	return fmt.Errorf("failed to ping postgres: %w", err)
}

func NewTableCreationError(err error) error {
	return fmt.Errorf("failed to create key-value table: %w", err)
}

func NewSetFailedError(key string, err error) error {
	return fmt.Errorf("failed to set key '%s': %w", key, err)
}

func NewDeleteFailedError(key string, err error) error {
	return fmt.Errorf("failed to delete key '%s': %w", key, err)
}

func NewCheckAndSetFailedError(key string, err error) error {
	return fmt.Errorf("check-and-set operation failed for key '%s': %w", key, err)
}
