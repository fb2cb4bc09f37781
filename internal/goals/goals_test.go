package goals

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"focusmindAPI/internal/types/habit"
)

func hoursHabit(entries ...habit.GoalEntry) *habit.Habit {
	return &habit.Habit{Kind: habit.KindHours, GoalHistory: entries}
}

func TestResolveForDate_History(t *testing.T) {
	h := hoursHabit(
		habit.GoalEntry{EffectiveDate: "2024-01-01", GoalWorkdays: 8, GoalWeekends: 2},
		habit.GoalEntry{EffectiveDate: "2024-01-10", GoalWorkdays: 4, GoalWeekends: 1},
	)

	// 2024-01-03 is a Wednesday, before the second entry took effect
	assert.Equal(t, 8.0, ResolveForDate(h, "2024-01-03"))
	// 2024-01-10 itself uses the new goal
	assert.Equal(t, 4.0, ResolveForDate(h, "2024-01-10"))
	// 2024-01-13 is a Saturday
	assert.Equal(t, 1.0, ResolveForDate(h, "2024-01-13"))
	// 2024-01-06 is a Saturday under the first entry
	assert.Equal(t, 2.0, ResolveForDate(h, "2024-01-06"))
}

func TestResolveForDate_SameEffectiveDateLastWins(t *testing.T) {
	h := hoursHabit(
		habit.GoalEntry{EffectiveDate: "2024-01-01", GoalWorkdays: 8, GoalWeekends: 8},
		habit.GoalEntry{EffectiveDate: "2024-01-01", GoalWorkdays: 6, GoalWeekends: 6},
	)
	assert.Equal(t, 6.0, ResolveForDate(h, "2024-01-02"))
}

func TestResolveForDate_Fallbacks(t *testing.T) {
	// no entry applies yet, fall back to current split fields
	h := hoursHabit(habit.GoalEntry{EffectiveDate: "2024-06-01", GoalWorkdays: 3, GoalWeekends: 3})
	h.GoalWorkdays = 5
	h.GoalWeekends = 2
	assert.Equal(t, 5.0, ResolveForDate(h, "2024-01-03")) // Wednesday
	assert.Equal(t, 2.0, ResolveForDate(h, "2024-01-06")) // Saturday

	// no history, no split fields, legacy scalar
	legacy := &habit.Habit{Kind: habit.KindHours, Goal: 7}
	assert.Equal(t, 7.0, ResolveForDate(legacy, "2024-01-03"))

	// nothing at all
	bare := &habit.Habit{Kind: habit.KindHours}
	assert.Equal(t, 0.0, ResolveForDate(bare, "2024-01-03"))
}

func TestResolveForDate_MalformedDate(t *testing.T) {
	h := hoursHabit(habit.GoalEntry{EffectiveDate: "2024-01-01", GoalWorkdays: 8, GoalWeekends: 2})
	assert.Equal(t, 0.0, ResolveForDate(h, "garbage"))
	assert.Equal(t, 0.0, ResolveForDate(h, ""))
}

func TestCompact(t *testing.T) {
	in := []habit.GoalEntry{
		{EffectiveDate: "2024-01-10", GoalWorkdays: 4},
		{EffectiveDate: "2024-01-01", GoalWorkdays: 8},
		{EffectiveDate: "2024-01-10", GoalWorkdays: 5},
		{EffectiveDate: "2024-01-01", GoalWorkdays: 9},
	}

	out := Compact(in)
	assert.Equal(t, []habit.GoalEntry{
		{EffectiveDate: "2024-01-01", GoalWorkdays: 9},
		{EffectiveDate: "2024-01-10", GoalWorkdays: 5},
	}, out)

	// idempotent
	assert.Equal(t, out, Compact(out))
}

func TestCompact_Empty(t *testing.T) {
	assert.Empty(t, Compact(nil))
}
