package services

import (
	"context"

	"focusmindAPI/internal/dates"
	"focusmindAPI/internal/summary"
)

// StatsService assembles the read models served to clients. All the
// arithmetic lives in internal/summary; this layer just feeds it the
// owner's habits.
type StatsService struct {
	habitService *HabitService
}

func NewStatsService(habitService *HabitService) *StatsService {
	return &StatsService{habitService: habitService}
}

// DaySummary summarizes one date. A nil summary means nothing is
// scheduled that day.
func (s *StatsService) DaySummary(ctx context.Context, ownerID, date string) (*summary.DaySummary, error) {
	habits, err := s.habitService.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return summary.ForDate(habits, date), nil
}

// Week builds the weekly grid for the week containing date.
func (s *StatsService) Week(ctx context.Context, ownerID, date string) (*summary.WeekResponse, error) {
	return s.WeekPreview(ctx, ownerID, date, nil)
}

// WeekPreview is Week with unsaved client-side hour edits overlaid, so
// totals track what the user is typing before anything is persisted.
func (s *StatsService) WeekPreview(ctx context.Context, ownerID, date string, pending summary.Pending) (*summary.WeekResponse, error) {
	habits, err := s.habitService.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return summary.BuildWeek(habits, date, dates.Today(), pending)
}

// Calendar returns the trailing five-week activity grid.
func (s *StatsService) Calendar(ctx context.Context, ownerID string) ([]summary.CalendarCell, error) {
	habits, err := s.habitService.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return summary.CalendarGrid(habits, dates.Today())
}

// Lifetime returns per-habit all-time stats in display order.
func (s *StatsService) Lifetime(ctx context.Context, ownerID string) ([]summary.LifetimeStats, error) {
	habits, err := s.habitService.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	stats := make([]summary.LifetimeStats, 0, len(habits))
	for _, h := range habits {
		stats = append(stats, summary.LifetimeFor(h))
	}
	return stats, nil
}
