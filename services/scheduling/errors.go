package scheduling

import (
	"errors"
	"fmt"
)

// SchedulingError is a typed domain error with a stable code.
type SchedulingError struct {
	Code    string
	Message string
}

func (e *SchedulingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

const (
	CodeBookingConflict = "bookingConflict"
	CodeSlotUnavailable = "slotUnavailable"
	CodeInvalidBooking  = "invalidBooking"
	CodeNotFound        = "notFound"
)

// NewConflictError reports a commit-time collision with an existing booking.
func NewConflictError(msg string) error {
	return &SchedulingError{Code: CodeBookingConflict, Message: msg}
}

// NewSlotUnavailableError reports that no slot can satisfy the request.
func NewSlotUnavailableError(msg string) error {
	return &SchedulingError{Code: CodeSlotUnavailable, Message: msg}
}

// NewValidationError reports a rejected booking request.
func NewValidationError(msg string) error {
	return &SchedulingError{Code: CodeInvalidBooking, Message: msg}
}

// NewNotFoundError reports a missing appointment record.
func NewNotFoundError(msg string) error {
	return &SchedulingError{Code: CodeNotFound, Message: msg}
}

// IsConflict reports whether err is a commit-time booking conflict.
func IsConflict(err error) bool {
	var se *SchedulingError
	return errors.As(err, &se) && se.Code == CodeBookingConflict
}

// IsNotFound reports whether err is a missing-record error.
func IsNotFound(err error) bool {
	var se *SchedulingError
	return errors.As(err, &se) && se.Code == CodeNotFound
}

// IsValidation reports whether err is a rejected booking request.
func IsValidation(err error) bool {
	var se *SchedulingError
	return errors.As(err, &se) && se.Code == CodeInvalidBooking
}

// IsSlotUnavailable reports whether err marks a time no slot can serve.
func IsSlotUnavailable(err error) bool {
	var se *SchedulingError
	return errors.As(err, &se) && se.Code == CodeSlotUnavailable
}
