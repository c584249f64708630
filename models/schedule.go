package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the wire format for calendar dates ("YYYY-MM-DD").
const DateLayout = "2006-01-02"

// MinutesPerDay bounds TimeOfDay values.
const MinutesPerDay = 1440

// TimeOfDay is a wall-clock time expressed as minutes from midnight
// (e.g., 540 for 9:00 AM). Valid values are in [0, 1440).
type TimeOfDay int

// ParseTimeOfDay parses a 24-hour "HH:MM" string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q: %w", s, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("time %q out of range", s)
	}
	return TimeOfDay(h*60 + m), nil
}

// Valid reports whether the value lies within a single day.
func (t TimeOfDay) Valid() bool {
	return t >= 0 && t < MinutesPerDay
}

// String renders the time as "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// MarshalJSON emits the "HH:MM" form.
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON accepts either an "HH:MM" string or bare integer minutes.
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, perr := ParseTimeOfDay(s)
		if perr != nil {
			return perr
		}
		*t = parsed
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid time of day %s: expected \"HH:MM\" or minutes", data)
	}
	*t = TimeOfDay(n)
	if !t.Valid() {
		return fmt.Errorf("time of day %d out of range [0, %d)", n, MinutesPerDay)
	}
	return nil
}

// TimeSlot is a daily time window. Start must be strictly before End;
// zero-length or inverted slots are rejected by Validate.
type TimeSlot struct {
	Start TimeOfDay `bson:"start" json:"start"`
	End   TimeOfDay `bson:"end" json:"end"`
}

// Validate checks slot bounds and ordering.
func (s TimeSlot) Validate() error {
	if !s.Start.Valid() || !s.End.Valid() {
		return fmt.Errorf("slot %s-%s out of range", s.Start, s.End)
	}
	if s.Start >= s.End {
		return fmt.Errorf("slot start %s must be before end %s", s.Start, s.End)
	}
	return nil
}

// Overlaps reports whether two slots on the same date strictly overlap.
// Touching endpoints (a.End == b.Start) do not conflict, so back-to-back
// bookings are legal. The predicate is symmetric and carries no date.
func (s TimeSlot) Overlaps(o TimeSlot) bool {
	return s.Start < o.End && o.Start < s.End
}

// Weekday is a day-of-week tag using the canonical 0-6 ordinal
// (Sunday = 0, matching time.Weekday).
type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var weekdayTags = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// ParseWeekday maps a three-letter tag to its Weekday. Unrecognized tags
// are a validation error, never silently dropped.
func ParseWeekday(tag string) (Weekday, error) {
	for i, t := range weekdayTags {
		if t == tag {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("unknown weekday tag %q", tag)
}

// Valid reports whether the ordinal is one of the seven days.
func (d Weekday) Valid() bool {
	return d >= Sunday && d <= Saturday
}

func (d Weekday) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayTags[d]
}

// MarshalJSON emits the three-letter tag.
func (d Weekday) MarshalJSON() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("weekday ordinal %d out of range", int(d))
	}
	return json.Marshal(weekdayTags[d])
}

// UnmarshalJSON accepts a three-letter tag.
func (d *Weekday) UnmarshalJSON(data []byte) error {
	var tag string
	if err := json.Unmarshal(data, &tag); err != nil {
		return fmt.Errorf("invalid weekday %s: expected tag string", data)
	}
	parsed, err := ParseWeekday(tag)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Schedule is a declarative recurrence rule: a date range, an optional
// weekday filter and a daily time slot.
//
// A schedule is recurring only when both EndDate and a non-empty
// DaysOfWeek are present. Any partially-specified recurrence degrades to
// a single occurrence on StartDate; this collapse is deliberate policy
// and callers relying on recurrence must supply both fields.
type Schedule struct {
	StartDate  string    `bson:"startDate" json:"startDate"`                     // "YYYY-MM-DD"
	EndDate    string    `bson:"endDate,omitempty" json:"endDate,omitempty"`     // "YYYY-MM-DD", empty when absent
	DaysOfWeek []Weekday `bson:"daysOfWeek,omitempty" json:"daysOfWeek,omitempty"`
	Slot       TimeSlot  `bson:"slot" json:"slot"`
}

// Recurring reports whether the schedule expands to multiple occurrences.
func (s Schedule) Recurring() bool {
	return s.EndDate != "" && len(s.DaysOfWeek) > 0
}

// Validate rejects malformed schedules: unparseable dates, an invalid
// slot, or an out-of-range weekday ordinal. A start date after the end
// date is valid (it expands to zero occurrences).
func (s Schedule) Validate() error {
	if _, err := time.Parse(DateLayout, s.StartDate); err != nil {
		return fmt.Errorf("invalid start date %q: %w", s.StartDate, err)
	}
	if s.EndDate != "" {
		if _, err := time.Parse(DateLayout, s.EndDate); err != nil {
			return fmt.Errorf("invalid end date %q: %w", s.EndDate, err)
		}
	}
	for _, d := range s.DaysOfWeek {
		if !d.Valid() {
			return fmt.Errorf("weekday ordinal %d out of range", int(d))
		}
	}
	return s.Slot.Validate()
}

// Occurrence is one concrete date plus time slot derived from a
// schedule: the atomic unit of commitment against a resource.
// Occurrences are immutable once produced.
type Occurrence struct {
	Date string   `bson:"date" json:"date"` // "YYYY-MM-DD"
	Slot TimeSlot `bson:"slot" json:"slot"`
}

// Conflict pairs a candidate occurrence with the committed occurrence it
// collides with, suitable for direct rendering as a rejection reason.
type Conflict struct {
	Candidate Occurrence `json:"candidate"`
	Existing  Occurrence `json:"existing"`
}
