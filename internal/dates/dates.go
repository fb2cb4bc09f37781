// Package dates holds the calendar arithmetic the habit engine is built on.
// Dates travel through the system as "2006-01-02" strings, the same keys the
// habit history maps use.
package dates

import (
	"time"
)

const Layout = "2006-01-02"

func Parse(s string) (time.Time, error) {
	return time.Parse(Layout, s)
}

func Format(t time.Time) string {
	return t.Format(Layout)
}

func Today() string {
	return Format(time.Now())
}

// DayOfWeek reports the weekday of a date key. ok is false for malformed
// input so callers can degrade instead of panicking.
func DayOfWeek(s string) (time.Weekday, bool) {
	t, err := Parse(s)
	if err != nil {
		return time.Sunday, false
	}
	return t.Weekday(), true
}

// IsWorkday is true Monday through Friday.
func IsWorkday(d time.Weekday) bool {
	return d >= time.Monday && d <= time.Friday
}

// MondayOf returns the Monday on or before t. Sunday belongs to the week
// that started six days earlier.
func MondayOf(t time.Time) time.Time {
	offset := int(t.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7
	}
	return t.AddDate(0, 0, -offset)
}

// WeekDates returns the seven date keys Monday..Sunday of the week
// containing the given date.
func WeekDates(s string) ([]string, error) {
	t, err := Parse(s)
	if err != nil {
		return nil, err
	}
	monday := MondayOf(t)
	days := make([]string, 7)
	for i := range days {
		days[i] = Format(monday.AddDate(0, 0, i))
	}
	return days, nil
}

// ISOWeek returns the ISO-8601 year and week number of a date key.
func ISOWeek(s string) (year, week int, err error) {
	t, err := Parse(s)
	if err != nil {
		return 0, 0, err
	}
	year, week = t.ISOWeek()
	return year, week, nil
}

// TotalISOWeeks reports how many ISO weeks a year has (52 or 53).
// December 28 always falls in the last week of its ISO year.
func TotalISOWeeks(year int) int {
	_, week := time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return week
}
