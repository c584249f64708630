package booking

import (
	"context"

	"reservo/models"
)

func (s *DefaultBookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	return s.Repo.GetByID(id)
}

func (s *DefaultBookingService) ListUserBookings(ctx context.Context, userID string) ([]models.Booking, error) {
	return s.Repo.ListByUser(userID)
}

// CancelBooking releases every occurrence held by the booking. Only the
// booking owner may cancel.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, userID, id string) error {
	booking, err := s.Repo.GetByID(id)
	if err != nil {
		return err
	}
	if booking.UserID != userID {
		return &BookingError{Code: "forbidden", Message: "booking belongs to another user"}
	}
	return s.Repo.Cancel(id)
}

// ListResourceOccurrences exposes the committed occurrence set for a
// resource, e.g. for rendering its calendar.
func (s *DefaultBookingService) ListResourceOccurrences(ctx context.Context, resourceID string) ([]models.Occurrence, error) {
	if _, err := s.ResourceRepo.GetByID(resourceID); err != nil {
		return nil, err
	}
	return s.Repo.ListOccurrencesByResource(resourceID)
}
