package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayOfWeek(t *testing.T) {
	d, ok := DayOfWeek("2024-01-01")
	require.True(t, ok)
	assert.Equal(t, time.Monday, d)

	d, ok = DayOfWeek("2024-01-07")
	require.True(t, ok)
	assert.Equal(t, time.Sunday, d)

	_, ok = DayOfWeek("not-a-date")
	assert.False(t, ok)

	_, ok = DayOfWeek("2024-1-1")
	assert.False(t, ok)
}

func TestIsWorkday(t *testing.T) {
	assert.True(t, IsWorkday(time.Monday))
	assert.True(t, IsWorkday(time.Friday))
	assert.False(t, IsWorkday(time.Saturday))
	assert.False(t, IsWorkday(time.Sunday))
}

func TestMondayOf(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"monday stays put", "2024-01-08", "2024-01-08"},
		{"wednesday backs up", "2024-01-10", "2024-01-08"},
		{"sunday belongs to the prior monday", "2024-01-14", "2024-01-08"},
		{"saturday", "2024-01-13", "2024-01-08"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, Format(MondayOf(in)))
		})
	}
}

func TestWeekDates(t *testing.T) {
	days, err := WeekDates("2024-01-10")
	require.NoError(t, err)
	require.Len(t, days, 7)
	assert.Equal(t, "2024-01-08", days[0])
	assert.Equal(t, "2024-01-14", days[6])

	// week spanning a month boundary
	days, err = WeekDates("2024-02-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-29", days[0])
	assert.Equal(t, "2024-02-04", days[6])

	_, err = WeekDates("bogus")
	assert.Error(t, err)
}

func TestISOWeek(t *testing.T) {
	year, week, err := ISOWeek("2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, 2024, year)
	assert.Equal(t, 1, week)

	// Jan 1 2023 was a Sunday, ISO says it belongs to 2022
	year, week, err = ISOWeek("2023-01-01")
	require.NoError(t, err)
	assert.Equal(t, 2022, year)
	assert.Equal(t, 52, week)
}

func TestTotalISOWeeks(t *testing.T) {
	assert.Equal(t, 53, TotalISOWeeks(2020))
	assert.Equal(t, 52, TotalISOWeeks(2023))
	assert.Equal(t, 52, TotalISOWeeks(2024))
	assert.Equal(t, 53, TotalISOWeeks(2026))
}
