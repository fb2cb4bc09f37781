// Package schedule decides which dates a habit applies to.
package schedule

import (
	"focusmindAPI/internal/dates"
	"focusmindAPI/internal/types/habit"
)

// AppliesOn reports whether the habit is scheduled on the given date.
// An empty day mask means the habit applies every day. Malformed dates
// never apply.
func AppliesOn(h *habit.Habit, date string) bool {
	day, ok := dates.DayOfWeek(date)
	if !ok {
		return false
	}
	if len(h.DaysOfWeek) == 0 {
		return true
	}
	for _, d := range h.DaysOfWeek {
		if d == day {
			return true
		}
	}
	return false
}

// AppliesInWeek reports whether the habit is scheduled on at least one
// of the given dates.
func AppliesInWeek(h *habit.Habit, weekDates []string) bool {
	for _, d := range weekDates {
		if AppliesOn(h, d) {
			return true
		}
	}
	return false
}
