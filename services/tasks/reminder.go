package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"reservo/models"
	"reservo/utils"
)

const TypeSendReminder = "booking:reminder"

// NewReminderTask builds an asynq task scheduled for the given fire time.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// ReminderScheduler enqueues booking reminders on the asynq queue.
type ReminderScheduler struct {
	Client *asynq.Client
}

// NewReminderScheduler wraps an asynq client targeting the reminder queue.
func NewReminderScheduler(redisOpts asynq.RedisClientOpt) *ReminderScheduler {
	return &ReminderScheduler{Client: asynq.NewClient(redisOpts)}
}

// ScheduleBookingReminder enqueues a reminder the day before the
// booking's first occurrence. Bookings that start too soon get no
// reminder; that is not an error.
func (s *ReminderScheduler) ScheduleBookingReminder(booking *models.Booking, resourceName string) error {
	if len(booking.Occurrences) == 0 {
		return nil
	}
	first := booking.Occurrences[0]
	date, err := time.Parse(models.DateLayout, first.Date)
	if err != nil {
		return fmt.Errorf("invalid occurrence date %q: %w", first.Date, err)
	}
	fireAt := date.AddDate(0, 0, -1).Add(time.Duration(first.Slot.Start) * time.Minute)
	if fireAt.Before(time.Now()) {
		return nil
	}

	payload := models.ReminderPayload{
		BookingID:    booking.ID,
		UserID:       booking.UserID,
		ResourceName: resourceName,
		Date:         first.Date,
		Start:        first.Slot.Start.String(),
		End:          first.Slot.End.String(),
	}
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return fmt.Errorf("failed to build reminder task: %w", err)
	}
	info, err := s.Client.Enqueue(task, opts...)
	if err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	utils.GetLogger().Debug("reminder enqueued",
		zap.String("bookingID", booking.ID), zap.String("taskID", info.ID))
	return nil
}
