package domain

import (
	"errors"
	"fmt"
)

// ErrValidation is matched by every *ValidationError via errors.Is.
var ErrValidation = errors.New("validation failed")

// ValidationError reports an input rejected before any calculation stage ran.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Is lets callers match with errors.Is(err, ErrValidation).
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ScheduleError reports a rate table that breaks the band partition rules.
type ScheduleError struct {
	Schedule string
	Band     int
	Message  string
}

func (e *ScheduleError) Error() string {
	if e.Schedule == "" {
		return "schedule: " + e.Message
	}
	return fmt.Sprintf("schedule %s band %d: %s", e.Schedule, e.Band, e.Message)
}
