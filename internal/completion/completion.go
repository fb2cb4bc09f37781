// Package completion evaluates recorded history values against a habit's
// kind and goal. History values come back from the store untyped, so the
// coercions here are deliberately strict.
package completion

import (
	"focusmindAPI/internal/dates"
	"focusmindAPI/internal/goals"
	"focusmindAPI/internal/types/habit"
)

// AsBool is true only for a literal true. Strings, numbers and nil are
// never treated as done.
func AsBool(v any) bool {
	b, ok := v.(bool)
	return ok && b
}

// AsNumber coerces the numeric types Firestore and encoding/json hand
// back. Anything else counts as 0.
func AsNumber(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	case float32:
		return float64(n)
	default:
		return 0
	}
}

// IsCompleted reports whether the habit's recorded value for the date
// meets its bar: a literal true for todo/todont, or hours at or above
// the goal in effect that day. An absent hours record counts as 0, so a
// goal of 0 is satisfied even with nothing logged. Malformed dates are
// never completed.
func IsCompleted(h *habit.Habit, date string) bool {
	if _, ok := dates.DayOfWeek(date); !ok {
		return false
	}
	if h.Kind == habit.KindHours {
		return AsNumber(h.History[date]) >= goals.ResolveForDate(h, date)
	}
	return AsBool(h.History[date])
}

// HoursOn returns the recorded hours for a date, 0 if none.
func HoursOn(h *habit.Habit, date string) float64 {
	return AsNumber(h.History[date])
}
