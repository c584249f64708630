package booking

import (
	"fmt"

	"reservo/models"
)

// BookingError is a typed rejection with a stable code for clients.
type BookingError struct {
	Code    string
	Message string
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewInvalidScheduleError(msg string) error {
	return &BookingError{Code: "invalidSchedule", Message: msg}
}

func NewNothingToBookError() error {
	return &BookingError{Code: "nothingToBook", Message: "schedule expands to zero occurrences"}
}

func NewSessionExpiredError() error {
	return &BookingError{Code: "sessionExpired", Message: "availability quote not found or expired"}
}

// ConflictError carries the full colliding pair set so the caller can
// explain the rejection, not just report the first hit.
type ConflictError struct {
	Conflicts []models.Conflict
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("schedule conflicts with %d existing occurrence(s)", len(e.Conflicts))
}
