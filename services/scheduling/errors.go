package scheduling

import (
	"errors"
	"fmt"
)

// SchedulingError is a coded error callers can branch on.
type SchedulingError struct {
	Code    string
	Message string
}

func (e *SchedulingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

const (
	CodeSlotUnavailable      = "slotUnavailable"
	CodeInvalidConfiguration = "invalidConfiguration"
	CodeNotFound             = "notFound"
	CodeInvalidTransition    = "invalidTransition"
)

// NewSlotUnavailableError signals that the requested slot was taken between
// slot generation and commit. Recoverable: the caller should re-fetch slots.
func NewSlotUnavailableError(msg string) error {
	return &SchedulingError{Code: CodeSlotUnavailable, Message: msg}
}

// NewInvalidConfigurationError signals a WeeklyAvailability that violates the
// configuration invariants. Rejected at write time.
func NewInvalidConfigurationError(msg string) error {
	return &SchedulingError{Code: CodeInvalidConfiguration, Message: msg}
}

func NewNotFoundError(msg string) error {
	return &SchedulingError{Code: CodeNotFound, Message: msg}
}

func NewInvalidTransitionError(msg string) error {
	return &SchedulingError{Code: CodeInvalidTransition, Message: msg}
}

// ErrorCode extracts the scheduling error code, or "" for other errors.
func ErrorCode(err error) string {
	var se *SchedulingError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// IsSlotUnavailable reports whether err is a slot conflict.
func IsSlotUnavailable(err error) bool {
	return ErrorCode(err) == CodeSlotUnavailable
}
