package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"focusmindAPI/internal/types/habit"
)

func TestAppliesOn(t *testing.T) {
	everyday := &habit.Habit{}
	assert.True(t, AppliesOn(everyday, "2024-01-08")) // Monday
	assert.True(t, AppliesOn(everyday, "2024-01-13")) // Saturday

	weekdaysOnly := &habit.Habit{DaysOfWeek: []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
	}}
	assert.True(t, AppliesOn(weekdaysOnly, "2024-01-08"))
	assert.False(t, AppliesOn(weekdaysOnly, "2024-01-13"))
	assert.False(t, AppliesOn(weekdaysOnly, "2024-01-14")) // Sunday

	sundays := &habit.Habit{DaysOfWeek: []time.Weekday{time.Sunday}}
	assert.True(t, AppliesOn(sundays, "2024-01-14"))
	assert.False(t, AppliesOn(sundays, "2024-01-08"))
}

func TestAppliesOn_MalformedDate(t *testing.T) {
	h := &habit.Habit{}
	assert.False(t, AppliesOn(h, "2024-13-45"))
	assert.False(t, AppliesOn(h, ""))
}

func TestAppliesInWeek(t *testing.T) {
	week := []string{
		"2024-01-08", "2024-01-09", "2024-01-10", "2024-01-11",
		"2024-01-12", "2024-01-13", "2024-01-14",
	}

	sundays := &habit.Habit{DaysOfWeek: []time.Weekday{time.Sunday}}
	assert.True(t, AppliesInWeek(sundays, week))

	// impossible mask value never matches
	never := &habit.Habit{DaysOfWeek: []time.Weekday{time.Weekday(9)}}
	assert.False(t, AppliesInWeek(never, week))

	assert.False(t, AppliesInWeek(sundays, nil))
}
