package redis

import (
	"errors"
	"fmt"
)

var (
	ErrConnectionFailed = errors.New("failed to connect to redis")
	ErrGetFailed        = errors.New("failed to get key")
	ErrSetFailed        = errors.New("failed to set key")
	ErrDeleteFailed     = errors.New("failed to delete key")
	ErrCloseFailed      = errors.New("failed to close redis connection")
	ErrEvalFailed       = errors.New("failed to evaluate lua script")
)

func NewConnectionFailedError(addr string, err error) error {
	return fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
}

func NewGetFailedError(key string, err error) error {
	return fmt.Errorf("failed to get key '%s': %w", key, err)
}

func NewSetFailedError(key string, err error) error {
	return fmt.Errorf("failed to set key '%s': %w", key, err)
}

func NewDeleteFailedError(key string, err error) error {
	return fmt.Errorf("failed to delete key '%s': %w", key, err)
}

func NewCloseFailedError(err error) error {
	return fmt.Errorf("failed to close redis connection: %w", err)
}

func NewEvalFailedError(err error) error {
	return fmt.Errorf("failed to evaluate check-and-set script: %w", err)
}
