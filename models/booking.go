package models

import "time"

// Booking is a confirmed reservation: the full occurrence set expanded
// from the requested schedule, committed atomically against one
// resource. Partial commits are not supported; a booking either holds
// every occurrence of its schedule or does not exist.
type Booking struct {
	ID          string       `bson:"id" json:"id"`                   // Unique booking identifier (UUID)
	ResourceID  string       `bson:"resource_id" json:"resource_id"` // Resource that was booked
	UserID      string       `bson:"user_id" json:"user_id"`         // User who made the booking
	Schedule    Schedule     `bson:"schedule" json:"schedule"`       // Recurrence rule as requested
	Occurrences []Occurrence `bson:"occurrences" json:"occurrences"` // Expanded occurrence set, ascending by date
	Status      string       `bson:"status" json:"status"`           // "confirmed" or "cancelled"
	CreatedAt   time.Time    `bson:"created_at" json:"created_at"`
}

// Booking statuses.
const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// BookingRequest is the payload for an availability quote or a booking
// confirmation.
type BookingRequest struct {
	ResourceID string   `json:"resourceId" binding:"required"`
	Schedule   Schedule `json:"schedule" binding:"required"`
}

// AvailabilityResult reports whether a candidate schedule can be
// committed against a resource. An empty Conflicts list with a non-empty
// occurrence set means the whole schedule is bookable.
type AvailabilityResult struct {
	SessionID       string       `json:"sessionId,omitempty"` // set on quote responses, redeemable on confirm
	ResourceID      string       `json:"resourceId"`
	ResourceVersion int64        `json:"-"`
	Occurrences     []Occurrence `json:"occurrences"`
	Conflicts       []Conflict   `json:"conflicts,omitempty"`
	Bookable        bool         `json:"bookable"`
}

// AvailabilitySession is the cached quote held between the availability
// check and booking confirmation.
type AvailabilitySession struct {
	SessionID       string   `json:"sessionId"`
	UserID          string   `json:"userId"`
	ResourceID      string   `json:"resourceId"`
	ResourceVersion int64    `json:"resourceVersion"`
	Schedule        Schedule `json:"schedule"`
}

// ReminderPayload is the asynq task body for booking reminders.
type ReminderPayload struct {
	BookingID    string `json:"bookingId"`
	UserID       string `json:"userId"`
	ResourceName string `json:"resourceName"`
	Date         string `json:"date"` // first occurrence date, "YYYY-MM-DD"
	Start        string `json:"start"`
	End          string `json:"end"`
}
