// Package schedule implements conflict detection and automatic shift
// planning for a contractor's booked day. All times are expressed as
// minutes since midnight; intervals are half-open [start, end).
package schedule

import (
	"fmt"
	"sort"
)

const (
	// DefaultDurationMinutes is assumed for slots that carry no duration.
	DefaultDurationMinutes = 60
	// DefaultEndOfDayMinutes is the working-hours cutoff (21:00).
	DefaultEndOfDayMinutes = 1260
	// roundingStep is the granularity planned starts are rounded up to.
	roundingStep = 5
)

// Slot is one booked interval on a contractor's day.
type Slot struct {
	// Start is the slot's start in minutes since midnight.
	Start int
	// Duration is the slot's length in minutes. Zero means DefaultDurationMinutes.
	Duration int
}

// End returns the exclusive end of the slot in minutes since midnight.
func (s Slot) End() int {
	d := s.Duration
	if d <= 0 {
		d = DefaultDurationMinutes
	}
	return s.Start + d
}

// Overlaps reports whether the interval [start, start+duration) overlaps
// the slot's [Start, End) interval.
func Overlaps(start, duration int, slot Slot) bool {
	return start < slot.End() && start+duration > slot.Start
}

// HasConflict reports whether the desired interval overlaps any slot.
func HasConflict(start, duration int, slots []Slot) bool {
	for _, slot := range slots {
		if Overlaps(start, duration, slot) {
			return true
		}
	}
	return false
}

// ShiftResult is the outcome of planning a start time against a booked day.
type ShiftResult struct {
	// Shifted is true when the desired start conflicted and was moved.
	Shifted bool `json:"shifted"`
	// NewStart is the planned start in minutes since midnight. Equal to the
	// desired start when Shifted is false.
	NewStart int `json:"new_start"`
	// Note carries a human-readable warning, currently only for end-of-day
	// overruns. Empty otherwise.
	Note string `json:"note,omitempty"`
}

// PlanShift computes the earliest non-overlapping start at or after desired
// for a job of the given duration, against the other slots already booked on
// the same contractor-day. endOfDay is the working-hours cutoff in minutes;
// values <= 0 use DefaultEndOfDayMinutes.
//
// The planner never searches before desired, and an overrun past endOfDay is
// reported in Note rather than failing: the caller decides whether to reject.
// PlanShift is pure; re-planning its own NewStart against the same slots
// reports Shifted=false.
func PlanShift(desired, duration int, slots []Slot, endOfDay int) ShiftResult {
	if duration <= 0 {
		duration = DefaultDurationMinutes
	}
	if endOfDay <= 0 {
		endOfDay = DefaultEndOfDayMinutes
	}

	if !HasConflict(desired, duration, slots) {
		return ShiftResult{Shifted: false, NewStart: desired}
	}

	sorted := make([]Slot, len(slots))
	copy(sorted, slots)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	candidate := desired
	for _, slot := range sorted {
		if candidate+duration <= slot.Start {
			// The gap before this slot fits the job.
			break
		}
		if candidate < slot.End() {
			candidate = slot.End()
		}
	}
	candidate = roundUp(candidate, roundingStep)

	res := ShiftResult{Shifted: true, NewStart: candidate}
	if candidate+duration > endOfDay {
		res.Note = fmt.Sprintf("shifted job would end at %s, past end of working day %s",
			FormatClock(candidate+duration), FormatClock(endOfDay))
	}
	return res
}

func roundUp(v, step int) int {
	if rem := v % step; rem != 0 {
		return v + step - rem
	}
	return v
}
