package completion

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"focusmindAPI/internal/types/habit"
)

func TestAsBool(t *testing.T) {
	assert.True(t, AsBool(true))
	assert.False(t, AsBool(false))
	assert.False(t, AsBool("true"))
	assert.False(t, AsBool(1))
	assert.False(t, AsBool(nil))
}

func TestAsNumber(t *testing.T) {
	assert.Equal(t, 2.5, AsNumber(2.5))
	assert.Equal(t, 3.0, AsNumber(int64(3)))
	assert.Equal(t, 4.0, AsNumber(4))
	assert.Equal(t, 0.0, AsNumber("5"))
	assert.Equal(t, 0.0, AsNumber(nil))
	assert.Equal(t, 0.0, AsNumber(true))
}

func TestIsCompleted_Boolean(t *testing.T) {
	h := &habit.Habit{
		Kind: habit.KindTodo,
		History: map[string]any{
			"2024-01-08": true,
			"2024-01-09": false,
			"2024-01-10": "true",
		},
	}
	assert.True(t, IsCompleted(h, "2024-01-08"))
	assert.False(t, IsCompleted(h, "2024-01-09"))
	assert.False(t, IsCompleted(h, "2024-01-10")) // strings never count
	assert.False(t, IsCompleted(h, "2024-01-11")) // no record

	h.Kind = habit.KindTodont
	assert.True(t, IsCompleted(h, "2024-01-08"))
}

func TestIsCompleted_Hours(t *testing.T) {
	h := &habit.Habit{
		Kind: habit.KindHours,
		GoalHistory: []habit.GoalEntry{
			{EffectiveDate: "2024-01-01", GoalWorkdays: 4, GoalWeekends: 2},
		},
		History: map[string]any{
			"2024-01-08": 4.0,        // Monday, exactly at goal
			"2024-01-09": 3.5,        // Tuesday, under
			"2024-01-13": int64(2),   // Saturday, store hands back int64
			"2024-01-14": 1,          // Sunday, under
		},
	}
	assert.True(t, IsCompleted(h, "2024-01-08"))
	assert.False(t, IsCompleted(h, "2024-01-09"))
	assert.True(t, IsCompleted(h, "2024-01-13"))
	assert.False(t, IsCompleted(h, "2024-01-14"))

	// no record counts as 0 hours
	assert.False(t, IsCompleted(h, "2024-01-10"))
}

func TestIsCompleted_ZeroGoal(t *testing.T) {
	// legacy hours document with no goal fields anywhere: the goal
	// resolves to 0 and 0 recorded (or nothing recorded) satisfies it
	h := &habit.Habit{Kind: habit.KindHours, History: map[string]any{}}
	assert.True(t, IsCompleted(h, "2024-01-08"))

	h.History["2024-01-09"] = 0.0
	assert.True(t, IsCompleted(h, "2024-01-09"))

	// a positive goal is not satisfied by an absent record
	h.GoalWorkdays = 4
	h.GoalWeekends = 4
	assert.False(t, IsCompleted(h, "2024-01-08"))
}

func TestIsCompleted_MalformedDate(t *testing.T) {
	h := &habit.Habit{
		Kind:    habit.KindTodo,
		History: map[string]any{"oops": true},
	}
	assert.False(t, IsCompleted(h, "oops"))
}

func TestHoursOn(t *testing.T) {
	h := &habit.Habit{
		Kind:    habit.KindHours,
		History: map[string]any{"2024-01-08": 2.5},
	}
	assert.Equal(t, 2.5, HoursOn(h, "2024-01-08"))
	assert.Equal(t, 0.0, HoursOn(h, "2024-01-09"))
}
