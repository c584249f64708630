package booking

import (
	"context"

	"github.com/go-redis/redis/v8"

	bookingRepo "reservo/database/repository/booking"
	resourceRepo "reservo/database/repository/resource"
	"reservo/models"
	"reservo/services/tasks"
)

// BookingService drives the quote-then-confirm booking flow. The
// availability check is pure; the confirm step re-runs it against the
// freshly read resource state and commits under the repository's
// version guard, so two racing confirmations for overlapping slots
// cannot both succeed.
type BookingService interface {
	CheckAvailability(ctx context.Context, userID string, req models.BookingRequest) (*models.AvailabilityResult, error)
	ConfirmBooking(ctx context.Context, userID, sessionID string) (*models.Booking, error)
	BookDirect(ctx context.Context, userID string, req models.BookingRequest) (*models.Booking, error)
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	ListUserBookings(ctx context.Context, userID string) ([]models.Booking, error)
	CancelBooking(ctx context.Context, userID, id string) error
	ListResourceOccurrences(ctx context.Context, resourceID string) ([]models.Occurrence, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo         bookingRepo.BookingRepository
	ResourceRepo resourceRepo.ResourceRepository
	Cache        *redis.Client            // optional; nil disables quote sessions
	Reminders    *tasks.ReminderScheduler // optional; nil disables reminders
}
