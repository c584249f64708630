package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"reservo/models"
	"reservo/services/booking"
)

// stubBookingService returns canned responses for handler tests.
type stubBookingService struct {
	availability *models.AvailabilityResult
	booking      *models.Booking
	err          error
}

func (s *stubBookingService) CheckAvailability(ctx context.Context, userID string, req models.BookingRequest) (*models.AvailabilityResult, error) {
	return s.availability, s.err
}

func (s *stubBookingService) ConfirmBooking(ctx context.Context, userID, sessionID string) (*models.Booking, error) {
	return s.booking, s.err
}

func (s *stubBookingService) BookDirect(ctx context.Context, userID string, req models.BookingRequest) (*models.Booking, error) {
	return s.booking, s.err
}

func (s *stubBookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	return s.booking, s.err
}

func (s *stubBookingService) ListUserBookings(ctx context.Context, userID string) ([]models.Booking, error) {
	return nil, s.err
}

func (s *stubBookingService) CancelBooking(ctx context.Context, userID, id string) error {
	return s.err
}

func (s *stubBookingService) ListResourceOccurrences(ctx context.Context, resourceID string) ([]models.Occurrence, error) {
	return nil, s.err
}

func bookingTestRouter(svc booking.BookingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewBookingHandler(svc, zap.NewNop())
	r.POST("/api/bookings/availability", h.CheckAvailability)
	r.POST("/api/bookings", h.CreateBooking)
	return r
}

const availabilityBody = `{
	"resourceId": "room-1",
	"schedule": {
		"startDate": "2024-03-04",
		"endDate": "2024-03-18",
		"daysOfWeek": ["Mon", "Wed"],
		"slot": {"start": "09:00", "end": "10:00"}
	}
}`

func TestCheckAvailabilityHandler(t *testing.T) {
	svc := &stubBookingService{
		availability: &models.AvailabilityResult{
			ResourceID: "room-1",
			Occurrences: []models.Occurrence{
				{Date: "2024-03-04", Slot: models.TimeSlot{Start: 540, End: 600}},
			},
			Bookable:  true,
			SessionID: "sess-1",
		},
	}
	r := bookingTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings/availability", strings.NewReader(availabilityBody))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var result models.AvailabilityResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Bookable)
	assert.Equal(t, "sess-1", result.SessionID)
	require.Len(t, result.Occurrences, 1)
	assert.Equal(t, models.TimeOfDay(540), result.Occurrences[0].Slot.Start)
}

func TestCheckAvailabilityHandlerRejectsBadPayload(t *testing.T) {
	r := bookingTestRouter(&stubBookingService{})

	w := httptest.NewRecorder()
	body := `{"schedule": {"slot": {"start": "25:00", "end": "26:00"}}}`
	req := httptest.NewRequest(http.MethodPost, "/api/bookings/availability", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateBookingHandlerRendersConflicts(t *testing.T) {
	svc := &stubBookingService{
		err: &booking.ConflictError{Conflicts: []models.Conflict{
			{
				Candidate: models.Occurrence{Date: "2024-03-06", Slot: models.TimeSlot{Start: 540, End: 600}},
				Existing:  models.Occurrence{Date: "2024-03-06", Slot: models.TimeSlot{Start: 570, End: 600}},
			},
		}},
	}
	r := bookingTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(availabilityBody))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "2024-03-06")
	assert.Contains(t, w.Body.String(), "09:30")
}
