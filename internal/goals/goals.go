// Package goals resolves the hour goal that applies to a given date and
// compacts the append-only goal history.
package goals

import (
	"sort"

	"focusmindAPI/internal/dates"
	"focusmindAPI/internal/types/habit"
)

// ResolveForDate returns the hour goal in effect on the given date.
//
// The newest history entry whose effective date is on or before the date
// wins; among entries sharing an effective date the last-appended one wins.
// Habits without history fall back to their current split fields, then to
// the legacy scalar goal. Malformed dates resolve to 0.
func ResolveForDate(h *habit.Habit, date string) float64 {
	day, ok := dates.DayOfWeek(date)
	if !ok {
		return 0
	}
	workday := dates.IsWorkday(day)

	best := -1
	for i, entry := range h.GoalHistory {
		if entry.EffectiveDate > date {
			continue
		}
		// >= keeps the later index on equal effective dates
		if best == -1 || entry.EffectiveDate >= h.GoalHistory[best].EffectiveDate {
			best = i
		}
	}
	if best >= 0 {
		if workday {
			return h.GoalHistory[best].GoalWorkdays
		}
		return h.GoalHistory[best].GoalWeekends
	}

	if h.GoalWorkdays > 0 || h.GoalWeekends > 0 {
		if workday {
			return h.GoalWorkdays
		}
		return h.GoalWeekends
	}
	return h.Goal
}

// Compact drops superseded entries: for each effective date only the
// last-appended entry survives, and the result is sorted ascending by
// effective date. Compacting twice changes nothing.
func Compact(entries []habit.GoalEntry) []habit.GoalEntry {
	if len(entries) == 0 {
		return entries
	}

	latest := make(map[string]habit.GoalEntry, len(entries))
	for _, e := range entries {
		latest[e.EffectiveDate] = e
	}

	out := make([]habit.GoalEntry, 0, len(latest))
	for _, e := range latest {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].EffectiveDate < out[j].EffectiveDate
	})
	return out
}
