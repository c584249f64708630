package bookingRepo

import (
	"context"

	"reservo/models"
)

// BookingRepository defines the interface for booking data access.
//
// CreateBookingAtomically is the storage half of the check-then-commit
// discipline: the conflict check is a pure in-memory computation, so the
// commit must fail when another booking for the same resource landed in
// between. The resource document carries a version counter; the commit
// inserts the booking and bumps the counter in one transaction, guarded
// by the version the caller observed when it read the occurrence list.
// A stale version aborts with ErrVersionConflict and the caller
// re-checks.
type BookingRepository interface {
	GetByID(id string) (*models.Booking, error)
	ListByUser(userID string) ([]models.Booking, error)
	ListOccurrencesByResource(resourceID string) ([]models.Occurrence, error)
	CreateBookingAtomically(ctx context.Context, booking *models.Booking, expectedResourceVersion int64) error
	Cancel(id string) error
}
