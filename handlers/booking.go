package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	bookingRepo "reservo/database/repository/booking"
	resourceRepo "reservo/database/repository/resource"
	"reservo/middleware"
	"reservo/models"
	"reservo/services/booking"
	"reservo/utils"
)

// BookingHandler exposes the quote-then-confirm booking flow over HTTP.
type BookingHandler struct {
	Service booking.BookingService
	Logger  *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

// CheckAvailability handles POST /api/bookings/availability.
func (h *BookingHandler) CheckAvailability(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	result, err := h.Service.CheckAvailability(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		h.writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ConfirmBooking handles POST /api/bookings/confirm/:sessionID.
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	sessionID := c.Param("sessionID")

	bk, err := h.Service.ConfirmBooking(c.Request.Context(), middleware.UserID(c), sessionID)
	if err != nil {
		h.writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, bk)
}

// CreateBooking handles POST /api/bookings (direct, no prior quote).
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	bk, err := h.Service.BookDirect(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		h.writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, bk)
}

// GetBooking handles GET /api/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	bk, err := h.Service.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, bk)
}

// ListMyBookings handles GET /api/bookings.
func (h *BookingHandler) ListMyBookings(c *gin.Context) {
	bookings, err := h.Service.ListUserBookings(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// CancelBooking handles DELETE /api/bookings/:id.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	if err := h.Service.CancelBooking(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		h.writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": models.BookingStatusCancelled})
}

// ListResourceOccurrences handles GET /api/resources/:id/occurrences.
func (h *BookingHandler) ListResourceOccurrences(c *gin.Context) {
	occs, err := h.Service.ListResourceOccurrences(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"occurrences": occs})
}

// writeBookingError maps service errors onto HTTP responses. Conflicts
// are an expected outcome reported as data, not a server failure.
func (h *BookingHandler) writeBookingError(c *gin.Context, err error) {
	var conflictErr *booking.ConflictError
	if errors.As(err, &conflictErr) {
		c.JSON(http.StatusConflict, gin.H{
			"error":     "schedule conflicts with existing bookings",
			"conflicts": conflictErr.Conflicts,
		})
		return
	}

	var bkErr *booking.BookingError
	if errors.As(err, &bkErr) {
		status := http.StatusBadRequest
		switch bkErr.Code {
		case "sessionExpired":
			status = http.StatusNotFound
		case "forbidden":
			status = http.StatusForbidden
		}
		c.JSON(status, gin.H{"error": bkErr.Message, "code": bkErr.Code})
		return
	}

	switch {
	case errors.Is(err, resourceRepo.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "resource not found", "")
	case errors.Is(err, bookingRepo.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "booking not found", "")
	case errors.Is(err, bookingRepo.ErrVersionConflict):
		utils.JSONError(c, http.StatusConflict, "resource is being booked concurrently, retry", err.Error())
	default:
		h.Logger.Error("booking request failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internal error", "")
	}
}
