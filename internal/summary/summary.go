// Package summary builds the read models: daily completion summaries,
// the weekly grid, the trailing calendar, and lifetime stats.
package summary

import (
	"math"
	"time"

	"focusmindAPI/internal/completion"
	"focusmindAPI/internal/dates"
	"focusmindAPI/internal/goals"
	"focusmindAPI/internal/schedule"
	"focusmindAPI/internal/types/habit"
)

// Pending holds unsaved client-side hour edits, habit id -> date -> hours.
// Pending values shadow recorded history everywhere they appear.
type Pending map[string]map[string]float64

func (p Pending) lookup(habitID, date string) (float64, bool) {
	if p == nil {
		return 0, false
	}
	v, ok := p[habitID][date]
	return v, ok
}

// completedOn is IsCompleted with the pending overlay applied.
func completedOn(h *habit.Habit, date string, pending Pending) bool {
	if h.Kind == habit.KindHours {
		if v, ok := pending.lookup(h.ID, date); ok {
			return v >= goals.ResolveForDate(h, date)
		}
	}
	return completion.IsCompleted(h, date)
}

func hoursOn(h *habit.Habit, date string, pending Pending) float64 {
	if v, ok := pending.lookup(h.ID, date); ok {
		return v
	}
	return completion.HoursOn(h, date)
}

type DaySummary struct {
	Date         string  `json:"date"`
	Completed    int     `json:"completed"`
	Total        int     `json:"total"`
	Percent      float64 `json:"percent"`
	TotalActions int     `json:"totalActions"`
}

// ForDate summarizes one day across all habits scheduled on it. Returns
// nil when nothing is scheduled, so callers can render "no habits today"
// instead of a misleading 0%. TotalActions counts every logged history
// entry across all habits, completed or not.
func ForDate(habits []*habit.Habit, date string) *DaySummary {
	s := &DaySummary{Date: date}
	for _, h := range habits {
		s.TotalActions += len(h.History)
		if !schedule.AppliesOn(h, date) {
			continue
		}
		s.Total++
		if completion.IsCompleted(h, date) {
			s.Completed++
		}
	}
	if s.Total == 0 {
		return nil
	}
	s.Percent = math.Round(float64(s.Completed) / float64(s.Total) * 100)
	return s
}

// AllCompletedOn reports whether every habit scheduled on the date is
// completed. Future dates and dates with nothing scheduled are never
// "all done".
func AllCompletedOn(habits []*habit.Habit, date, today string, pending Pending) bool {
	if date > today {
		return false
	}
	applicable := 0
	for _, h := range habits {
		if !schedule.AppliesOn(h, date) {
			continue
		}
		applicable++
		if !completedOn(h, date, pending) {
			return false
		}
	}
	return applicable > 0
}

type LifetimeStats struct {
	HabitID    string     `json:"habitId"`
	Name       string     `json:"name"`
	Kind       habit.Kind `json:"kind"`
	Recorded   int        `json:"recorded"`
	Completed  int        `json:"completed"`
	TotalHours float64    `json:"totalHours,omitempty"`
}

// LifetimeFor totals a habit's full history: days with any record, days
// that met the bar, and for hour habits the hours logged overall.
func LifetimeFor(h *habit.Habit) LifetimeStats {
	s := LifetimeStats{HabitID: h.ID, Name: h.Name, Kind: h.Kind}
	for date := range h.History {
		s.Recorded++
		if completion.IsCompleted(h, date) {
			s.Completed++
		}
		if h.Kind == habit.KindHours {
			s.TotalHours += completion.HoursOn(h, date)
		}
	}
	return s
}

const calendarDays = 35

type CalendarCell struct {
	Date      string  `json:"date"`
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Rate      float64 `json:"rate"`
}

// CalendarGrid builds the trailing five-week activity grid: 35 cells
// starting at the week start (Sunday) on or before today minus 29 days.
func CalendarGrid(habits []*habit.Habit, today string) ([]CalendarCell, error) {
	t, err := dates.Parse(today)
	if err != nil {
		return nil, err
	}
	start := t.AddDate(0, 0, -29)
	start = start.AddDate(0, 0, -int(start.Weekday()))

	cells := make([]CalendarCell, calendarDays)
	for i := range cells {
		date := dates.Format(start.AddDate(0, 0, i))
		cell := CalendarCell{Date: date}
		for _, h := range habits {
			if !schedule.AppliesOn(h, date) {
				continue
			}
			cell.Total++
			if completion.IsCompleted(h, date) {
				cell.Completed++
			}
		}
		if cell.Total > 0 {
			cell.Rate = float64(cell.Completed) / float64(cell.Total)
		}
		cells[i] = cell
	}
	return cells, nil
}

type WeekInfo struct {
	Start      string `json:"start"`
	End        string `json:"end"`
	Number     int    `json:"number"`
	TotalWeeks int    `json:"totalWeeks"`
}

type WeekDay struct {
	Date         string       `json:"date"`
	Weekday      time.Weekday `json:"weekday"`
	AllCompleted bool         `json:"allCompleted"`
	IsToday      bool         `json:"isToday"`
}

type WeekCell struct {
	Date      string  `json:"date"`
	Applies   bool    `json:"applies"`
	Completed bool    `json:"completed"`
	Hours     float64 `json:"hours"`
	Goal      float64 `json:"goal"`
}

// RowTotals sums an hour habit's week: hours done against the goal over
// every scheduled date of the week, future ones included.
type RowTotals struct {
	Done float64 `json:"done"`
	Goal float64 `json:"goal"`
}

// RowCounts sums a boolean habit's week: days completed against days
// scheduled, future ones included.
type RowCounts struct {
	Completed  int `json:"completed"`
	Applicable int `json:"applicable"`
}

type WeekRow struct {
	HabitID string     `json:"habitId"`
	Name    string     `json:"name"`
	Cells   []WeekCell `json:"cells"`
	Totals  *RowTotals `json:"totals,omitempty"`
	Counts  *RowCounts `json:"counts,omitempty"`
}

type WeekGroup struct {
	Kind habit.Kind `json:"kind"`
	Rows []WeekRow  `json:"rows"`
}

type WeekResponse struct {
	Info   WeekInfo    `json:"info"`
	Days   []WeekDay   `json:"days"`
	Groups []WeekGroup `json:"groups"`
}

// TotalsForWeek computes an hour habit's weekly done/goal pair. The goal
// side counts every scheduled date in the week, so a week in progress
// shows the full bar, not just the elapsed part.
func TotalsForWeek(h *habit.Habit, weekDates []string, pending Pending) RowTotals {
	var t RowTotals
	for _, date := range weekDates {
		if !schedule.AppliesOn(h, date) {
			continue
		}
		t.Done += hoursOn(h, date, pending)
		t.Goal += goals.ResolveForDate(h, date)
	}
	return t
}

// CountsForWeek computes a boolean habit's weekly completed/applicable
// pair. Applicable spans the whole week, so the denominator does not
// shrink mid-week.
func CountsForWeek(h *habit.Habit, weekDates []string, pending Pending) RowCounts {
	var c RowCounts
	for _, date := range weekDates {
		if !schedule.AppliesOn(h, date) {
			continue
		}
		c.Applicable++
		if completedOn(h, date, pending) {
			c.Completed++
		}
	}
	return c
}

// BuildWeek assembles the weekly grid for the week containing date.
// Habits are grouped by kind in a fixed order and only habits scheduled
// at least once that week get a row.
func BuildWeek(habits []*habit.Habit, date, today string, pending Pending) (*WeekResponse, error) {
	weekDates, err := dates.WeekDates(date)
	if err != nil {
		return nil, err
	}
	year, number, err := dates.ISOWeek(date)
	if err != nil {
		return nil, err
	}

	resp := &WeekResponse{
		Info: WeekInfo{
			Start:      weekDates[0],
			End:        weekDates[6],
			Number:     number,
			TotalWeeks: dates.TotalISOWeeks(year),
		},
	}

	for _, d := range weekDates {
		day, _ := dates.DayOfWeek(d)
		resp.Days = append(resp.Days, WeekDay{
			Date:         d,
			Weekday:      day,
			AllCompleted: AllCompletedOn(habits, d, today, pending),
			IsToday:      d == today,
		})
	}

	for _, kind := range []habit.Kind{habit.KindTodo, habit.KindTodont, habit.KindHours} {
		group := WeekGroup{Kind: kind}
		for _, h := range habits {
			if h.Kind != kind || !schedule.AppliesInWeek(h, weekDates) {
				continue
			}
			group.Rows = append(group.Rows, buildRow(h, weekDates, pending))
		}
		if len(group.Rows) > 0 {
			resp.Groups = append(resp.Groups, group)
		}
	}
	return resp, nil
}

func buildRow(h *habit.Habit, weekDates []string, pending Pending) WeekRow {
	row := WeekRow{HabitID: h.ID, Name: h.Name}
	for _, date := range weekDates {
		cell := WeekCell{
			Date:      date,
			Applies:   schedule.AppliesOn(h, date),
			Completed: completedOn(h, date, pending),
		}
		if h.Kind == habit.KindHours && cell.Applies {
			cell.Hours = hoursOn(h, date, pending)
			cell.Goal = goals.ResolveForDate(h, date)
		}
		row.Cells = append(row.Cells, cell)
	}
	if h.Kind == habit.KindHours {
		totals := TotalsForWeek(h, weekDates, pending)
		row.Totals = &totals
	} else {
		counts := CountsForWeek(h, weekDates, pending)
		row.Counts = &counts
	}
	return row
}
