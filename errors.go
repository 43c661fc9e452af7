package quotarate

import (
	"errors"
	"fmt"
)

var (
	// ErrCountNotFound is returned when no message count precedes a
	// "per"/"/"/"every" separator.
	ErrCountNotFound = errors.New("message count not found")

	// ErrPeriodNotFound is returned when no separator introduces a period.
	ErrPeriodNotFound = errors.New("period not found")

	// ErrDurationNotParseable is returned when the period phrase contains no
	// recognized duration unit.
	ErrDurationNotParseable = errors.New("duration not parseable")

	// ErrZeroDuration is returned when the period evaluates to zero seconds.
	ErrZeroDuration = errors.New("duration cannot be zero")
)

func NewCountNotFoundError(expr string) error {
	return fmt.Errorf("could not find message count in %q: %w", expr, ErrCountNotFound)
}

func NewPeriodNotFoundError(expr string) error {
	return fmt.Errorf("could not find period in %q: %w", expr, ErrPeriodNotFound)
}

func NewDurationNotParseableError(phrase string) error {
	return fmt.Errorf("could not parse duration %q: %w", phrase, ErrDurationNotParseable)
}

func NewZeroDurationError(expr string) error {
	return fmt.Errorf("quota %q: %w", expr, ErrZeroDuration)
}
