// Package scheduling holds the pure booking-decision core: expanding a
// recurrence rule into concrete occurrences and detecting collisions
// against the occurrences already committed to a resource. Every
// function here is stateless and safe for concurrent use; atomicity of
// the surrounding check-then-commit sequence is the storage layer's
// responsibility.
package scheduling

import (
	"iter"
	"time"

	"reservo/models"
)

// Occurrences expands a schedule into its concrete occurrences, emitted
// in ascending date order. The sequence is finite and restartable: each
// range over it replays the same expansion.
//
// A non-recurring schedule (no end date, or no weekday filter) yields
// exactly one occurrence on its start date; any weekday filter present
// on such a schedule is ignored. A recurring schedule yields one
// occurrence per day in the closed interval [StartDate, EndDate] whose
// weekday is in DaysOfWeek, each carrying the schedule's slot. A start
// date after the end date yields nothing.
//
// Inputs are assumed to have passed Schedule.Validate; behavior on
// malformed dates is unspecified (the sequence is empty).
func Occurrences(s models.Schedule) iter.Seq[models.Occurrence] {
	return func(yield func(models.Occurrence) bool) {
		if !s.Recurring() {
			yield(models.Occurrence{Date: s.StartDate, Slot: s.Slot})
			return
		}

		start, err := time.Parse(models.DateLayout, s.StartDate)
		if err != nil {
			return
		}
		end, err := time.Parse(models.DateLayout, s.EndDate)
		if err != nil {
			return
		}

		days := make(map[models.Weekday]bool, len(s.DaysOfWeek))
		for _, d := range s.DaysOfWeek {
			days[d] = true
		}

		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			if !days[models.Weekday(d.Weekday())] {
				continue
			}
			occ := models.Occurrence{
				Date: d.Format(models.DateLayout),
				Slot: s.Slot,
			}
			if !yield(occ) {
				return
			}
		}
	}
}

// CollectOccurrences materializes the expansion as an ordered slice.
func CollectOccurrences(s models.Schedule) []models.Occurrence {
	var out []models.Occurrence
	for occ := range Occurrences(s) {
		out = append(out, occ)
	}
	return out
}

// FindConflicts expands the candidate schedule and tests every
// same-date pair against the given committed occurrences, returning all
// colliding pairs. Callers pre-filter existing to the target resource.
//
// Every collision is reported, not just the first: a rejection message
// needs the full set. An empty result means the candidate may be
// committed in full; a candidate that expands to zero occurrences also
// returns an empty result, so callers must separately reject schedules
// with nothing to book.
func FindConflicts(candidate models.Schedule, existing []models.Occurrence) []models.Conflict {
	var conflicts []models.Conflict
	for co := range Occurrences(candidate) {
		for _, eo := range existing {
			if co.Date != eo.Date {
				continue
			}
			if co.Slot.Overlaps(eo.Slot) {
				conflicts = append(conflicts, models.Conflict{Candidate: co, Existing: eo})
			}
		}
	}
	return conflicts
}
