package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingRepo "reservo/database/repository/booking"
	"reservo/config"
	"reservo/models"
	"reservo/services/scheduling"
	"reservo/utils"
)

// commitAttempts bounds retries when the resource version moves between
// the conflict check and the transactional insert.
const commitAttempts = 3

// CheckAvailability expands the candidate schedule and reports every
// collision with the occurrences already committed against the
// resource. A bookable result carries a session id redeemable by
// ConfirmBooking while the quote is fresh.
func (s *DefaultBookingService) CheckAvailability(ctx context.Context, userID string, req models.BookingRequest) (*models.AvailabilityResult, error) {
	if err := req.Schedule.Validate(); err != nil {
		return nil, NewInvalidScheduleError(err.Error())
	}

	resource, err := s.ResourceRepo.GetByID(req.ResourceID)
	if err != nil {
		return nil, err
	}

	existing, err := s.Repo.ListOccurrencesByResource(resource.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load committed occurrences: %w", err)
	}

	occurrences := scheduling.CollectOccurrences(req.Schedule)
	conflicts := scheduling.FindConflicts(req.Schedule, existing)

	result := &models.AvailabilityResult{
		ResourceID:      resource.ID,
		ResourceVersion: resource.Version,
		Occurrences:     occurrences,
		Conflicts:       conflicts,
		// An empty conflict list alone is not enough: a vacuous schedule
		// has nothing to book and must not be committable.
		Bookable: len(conflicts) == 0 && len(occurrences) > 0,
	}

	if result.Bookable && s.Cache != nil {
		sessionID, err := s.saveQuoteSession(ctx, models.AvailabilitySession{
			UserID:          userID,
			ResourceID:      resource.ID,
			ResourceVersion: resource.Version,
			Schedule:        req.Schedule,
		})
		if err != nil {
			return nil, err
		}
		result.SessionID = sessionID
	}
	return result, nil
}

// ConfirmBooking redeems a quote session and commits the booking. The
// quote is only a hint: the conflict check runs again on the resource's
// current state before anything is written.
func (s *DefaultBookingService) ConfirmBooking(ctx context.Context, userID, sessionID string) (*models.Booking, error) {
	session, err := s.loadQuoteSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, NewSessionExpiredError()
	}

	booking, err := s.commit(ctx, userID, models.BookingRequest{
		ResourceID: session.ResourceID,
		Schedule:   session.Schedule,
	})
	if err != nil {
		return nil, err
	}

	// A redeemed quote is single-use.
	s.Cache.Del(ctx, utils.QuoteSessionPrefix+sessionID)
	return booking, nil
}

// BookDirect validates and commits a booking in one call, without a
// prior quote.
func (s *DefaultBookingService) BookDirect(ctx context.Context, userID string, req models.BookingRequest) (*models.Booking, error) {
	if err := req.Schedule.Validate(); err != nil {
		return nil, NewInvalidScheduleError(err.Error())
	}
	return s.commit(ctx, userID, req)
}

// commit runs the check-then-commit sequence: read the resource, check
// conflicts against its committed occurrences, and insert the booking
// under the repository's version guard. A guard miss means another
// booking landed first; the check is repeated against the new state.
func (s *DefaultBookingService) commit(ctx context.Context, userID string, req models.BookingRequest) (*models.Booking, error) {
	logger := utils.GetLogger()

	for attempt := 0; attempt < commitAttempts; attempt++ {
		resource, err := s.ResourceRepo.GetByID(req.ResourceID)
		if err != nil {
			return nil, err
		}

		existing, err := s.Repo.ListOccurrencesByResource(resource.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load committed occurrences: %w", err)
		}

		occurrences := scheduling.CollectOccurrences(req.Schedule)
		if len(occurrences) == 0 {
			return nil, NewNothingToBookError()
		}
		if conflicts := scheduling.FindConflicts(req.Schedule, existing); len(conflicts) > 0 {
			return nil, &ConflictError{Conflicts: conflicts}
		}

		booking := &models.Booking{
			ID:          uuid.New().String(),
			ResourceID:  resource.ID,
			UserID:      userID,
			Schedule:    req.Schedule,
			Occurrences: occurrences,
			Status:      models.BookingStatusConfirmed,
			CreatedAt:   time.Now(),
		}

		err = s.Repo.CreateBookingAtomically(ctx, booking, resource.Version)
		if errors.Is(err, bookingRepo.ErrVersionConflict) {
			logger.Debug("resource version moved during commit, re-checking",
				zap.String("resourceID", resource.ID), zap.Int("attempt", attempt+1))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to commit booking: %w", err)
		}

		if s.Reminders != nil {
			if err := s.Reminders.ScheduleBookingReminder(booking, resource.Name); err != nil {
				// Reminders are best effort; the booking stands.
				logger.Warn("failed to schedule booking reminder",
					zap.String("bookingID", booking.ID), zap.Error(err))
			}
		}
		return booking, nil
	}
	return nil, fmt.Errorf("failed to commit booking after %d attempts: %w", commitAttempts, bookingRepo.ErrVersionConflict)
}

func (s *DefaultBookingService) saveQuoteSession(ctx context.Context, session models.AvailabilitySession) (string, error) {
	sessionID := uuid.New().String()
	session.SessionID = sessionID
	data, err := json.Marshal(session)
	if err != nil {
		return "", fmt.Errorf("failed to marshal quote session: %w", err)
	}
	ttl := time.Duration(config.AppConfig.SessionTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if err := s.Cache.Set(ctx, utils.QuoteSessionPrefix+sessionID, data, ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to cache quote session: %w", err)
	}
	return sessionID, nil
}

func (s *DefaultBookingService) loadQuoteSession(ctx context.Context, sessionID string) (*models.AvailabilitySession, error) {
	if s.Cache == nil {
		return nil, NewSessionExpiredError()
	}
	data, err := s.Cache.Get(ctx, utils.QuoteSessionPrefix+sessionID).Result()
	if err != nil {
		return nil, NewSessionExpiredError()
	}
	var session models.AvailabilitySession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to parse quote session: %w", err)
	}
	return &session, nil
}
