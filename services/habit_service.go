package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"focusmindAPI/internal/dates"
	"focusmindAPI/internal/goals"
	"focusmindAPI/internal/ordering"
	"focusmindAPI/internal/types/habit"
)

const habitsCollection = "habits"

var ErrHabitNotFound = errors.New("habit not found")

type HabitService struct {
	client *firestore.Client
}

func NewHabitService(client *firestore.Client) *HabitService {
	return &HabitService{client: client}
}

func (s *HabitService) habits() *firestore.CollectionRef {
	return s.client.Collection(habitsCollection)
}

// fetch loads and normalizes all of an owner's habits, without the
// read-path maintenance List performs.
func (s *HabitService) fetch(ctx context.Context, ownerID string) ([]*habit.Habit, error) {
	iter := s.habits().Where("ownerId", "==", ownerID).Documents(ctx)
	defer iter.Stop()

	var result []*habit.Habit
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query habits: %w", err)
		}

		var h habit.Habit
		if err := doc.DataTo(&h); err != nil {
			return nil, fmt.Errorf("failed to decode habit %s: %w", doc.Ref.ID, err)
		}
		h.ID = doc.Ref.ID
		h.Normalize()
		result = append(result, &h)
	}
	return result, nil
}

// List returns the owner's habits sorted by kind and manual order. The
// read path also performs two pieces of lazy maintenance: order-less
// habits get a persisted order, and bloated goal histories are compacted.
func (s *HabitService) List(ctx context.Context, ownerID string) ([]*habit.Habit, error) {
	result, err := s.fetch(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if err := s.migrateOrders(ctx, result); err != nil {
		return nil, err
	}
	s.compactHistories(ctx, result)

	sortHabits(result)
	return result, nil
}

func kindRank(k habit.Kind) int {
	switch k {
	case habit.KindTodo:
		return 0
	case habit.KindTodont:
		return 1
	default:
		return 2
	}
}

func sortHabits(habits []*habit.Habit) {
	sort.SliceStable(habits, func(i, j int) bool {
		ri, rj := kindRank(habits[i].Kind), kindRank(habits[j].Kind)
		if ri != rj {
			return ri < rj
		}
		oi, oj := habits[i].EffectiveOrder(), habits[j].EffectiveOrder()
		if oi != oj {
			return oi < oj
		}
		return habits[i].ID < habits[j].ID
	})
}

// migrateOrders assigns orders to habits that never got one, densely
// after the current maximum of their kind group, oldest first. Runs once
// per affected habit; subsequent loads find nothing to do.
func (s *HabitService) migrateOrders(ctx context.Context, habits []*habit.Habit) error {
	byKind := make(map[habit.Kind][]*habit.Habit)
	for _, h := range habits {
		byKind[h.Kind] = append(byKind[h.Kind], h)
	}

	for _, group := range byKind {
		var max int64 = -1
		var orderless []*habit.Habit
		for _, h := range group {
			if h.Order == nil {
				orderless = append(orderless, h)
			} else if *h.Order > max {
				max = *h.Order
			}
		}
		sort.SliceStable(orderless, func(i, j int) bool {
			return orderless[i].CreatedAt.Before(orderless[j].CreatedAt)
		})

		for _, h := range orderless {
			max++
			order := max
			_, err := s.habits().Doc(h.ID).Update(ctx, []firestore.Update{
				{Path: "order", Value: order},
			})
			if err != nil {
				return fmt.Errorf("failed to migrate order for habit %s: %w", h.ID, err)
			}
			h.Order = &order
		}
	}
	return nil
}

// compactHistories persists compacted goal histories, but only when
// compaction actually shrank something. Failures are logged and ignored;
// the in-memory copy is already compact and the write will be retried on
// a later load.
func (s *HabitService) compactHistories(ctx context.Context, habits []*habit.Habit) {
	for _, h := range habits {
		compacted := goals.Compact(h.GoalHistory)
		if len(compacted) >= len(h.GoalHistory) {
			h.GoalHistory = compacted
			continue
		}
		_, err := s.habits().Doc(h.ID).Update(ctx, []firestore.Update{
			{Path: "goalHistory", Value: compacted},
		})
		if err != nil {
			log.Printf("Failed to compact goal history for habit %s: %v", h.ID, err)
		}
		h.GoalHistory = compacted
	}
}

// Get returns one habit, or ErrHabitNotFound when it does not exist or
// belongs to someone else. Ownership mismatches are indistinguishable
// from missing documents on purpose.
func (s *HabitService) Get(ctx context.Context, ownerID, habitID string) (*habit.Habit, error) {
	snap, err := s.habits().Doc(habitID).Get(ctx)
	if err != nil {
		if snap != nil && !snap.Exists() {
			return nil, ErrHabitNotFound
		}
		return nil, fmt.Errorf("failed to get habit: %w", err)
	}

	var h habit.Habit
	if err := snap.DataTo(&h); err != nil {
		return nil, fmt.Errorf("failed to decode habit: %w", err)
	}
	h.ID = snap.Ref.ID
	h.Normalize()

	if h.OwnerID != ownerID {
		return nil, ErrHabitNotFound
	}
	return &h, nil
}

func (s *HabitService) Create(ctx context.Context, ownerID string, req *habit.CreateHabitRequest) (*habit.Habit, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("habit name is required")
	}
	kind := habit.NormalizeKind(req.Kind)

	var daysOfWeek []time.Weekday
	if req.DaysOfWeek != nil {
		if len(*req.DaysOfWeek) == 0 {
			return nil, fmt.Errorf("daysOfWeek must not be empty when provided")
		}
		for _, d := range *req.DaysOfWeek {
			if d < 0 || d > 6 {
				return nil, fmt.Errorf("invalid day of week: %d", d)
			}
			daysOfWeek = append(daysOfWeek, time.Weekday(d))
		}
	}

	h := &habit.Habit{
		ID:         uuid.NewString(),
		OwnerID:    ownerID,
		Name:       name,
		Kind:       kind,
		DaysOfWeek: daysOfWeek,
		History:    map[string]any{},
		CreatedAt:  time.Now(),
	}

	if kind == habit.KindHours {
		if req.GoalWorkdays <= 0 || req.GoalWeekends <= 0 {
			return nil, fmt.Errorf("hour goals must be greater than zero")
		}
		h.GoalWorkdays = req.GoalWorkdays
		h.GoalWeekends = req.GoalWeekends
		h.GoalHistory = []habit.GoalEntry{{
			EffectiveDate: dates.Today(),
			GoalWorkdays:  req.GoalWorkdays,
			GoalWeekends:  req.GoalWeekends,
		}}
	}

	existing, err := s.fetch(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	var max int64 = -1
	for _, e := range existing {
		if e.Kind == kind && e.Order != nil && *e.Order > max {
			max = *e.Order
		}
	}
	order := max + 1
	h.Order = &order

	if _, err := s.habits().Doc(h.ID).Set(ctx, h); err != nil {
		return nil, fmt.Errorf("failed to create habit: %w", err)
	}
	return h, nil
}

func (s *HabitService) Rename(ctx context.Context, ownerID, habitID, name string) (*habit.Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("habit name is required")
	}

	h, err := s.Get(ctx, ownerID, habitID)
	if err != nil {
		return nil, err
	}

	_, err = s.habits().Doc(habitID).Update(ctx, []firestore.Update{
		{Path: "name", Value: name},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to rename habit: %w", err)
	}
	h.Name = name
	return h, nil
}

// UpdateProgress records one date's value: a bool toggle for todo/todont
// habits, an hour count for hours habits. Only the single history key is
// written, concurrent edits to other dates never collide.
func (s *HabitService) UpdateProgress(ctx context.Context, ownerID, habitID string, req *habit.UpdateProgressRequest) (*habit.Habit, error) {
	if _, err := dates.Parse(req.Date); err != nil {
		return nil, fmt.Errorf("invalid date %q", req.Date)
	}

	h, err := s.Get(ctx, ownerID, habitID)
	if err != nil {
		return nil, err
	}

	value, err := coerceValue(h.Kind, req.Value)
	if err != nil {
		return nil, err
	}

	// Date keys contain dashes, so a dotted path would be misparsed.
	_, err = s.habits().Doc(habitID).Update(ctx, []firestore.Update{
		{FieldPath: firestore.FieldPath{"history", req.Date}, Value: value},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update progress: %w", err)
	}
	h.History[req.Date] = value
	return h, nil
}

func coerceValue(kind habit.Kind, v any) (any, error) {
	if kind == habit.KindHours {
		var n float64
		switch x := v.(type) {
		case float64:
			n = x
		case int64:
			n = float64(x)
		case int:
			n = float64(x)
		default:
			return nil, fmt.Errorf("hours value must be a number")
		}
		if n < 0 {
			return nil, fmt.Errorf("hours value must not be negative")
		}
		return n, nil
	}

	b, ok := v.(bool)
	if !ok {
		return nil, fmt.Errorf("progress value must be a boolean")
	}
	return b, nil
}

// SaveHours persists a batch of staged hour edits, one history key per
// date. The writes are independent, so they run concurrently and the
// first failure wins.
func (s *HabitService) SaveHours(ctx context.Context, ownerID, habitID string, values map[string]float64) (*habit.Habit, error) {
	h, err := s.Get(ctx, ownerID, habitID)
	if err != nil {
		return nil, err
	}
	if h.Kind != habit.KindHours {
		return nil, fmt.Errorf("habit %s does not track hours", habitID)
	}

	for date, v := range values {
		if _, err := dates.Parse(date); err != nil {
			return nil, fmt.Errorf("invalid date %q", date)
		}
		if v < 0 {
			return nil, fmt.Errorf("hours value must not be negative")
		}
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(values))
	for date, v := range values {
		wg.Add(1)
		go func(date string, v float64) {
			defer wg.Done()
			_, err := s.habits().Doc(habitID).Update(ctx, []firestore.Update{
				{FieldPath: firestore.FieldPath{"history", date}, Value: v},
			})
			if err != nil {
				errs <- fmt.Errorf("failed to save hours for %s: %w", date, err)
			}
		}(date, v)
	}
	wg.Wait()
	close(errs)
	if err := <-errs; err != nil {
		return nil, err
	}

	for date, v := range values {
		h.History[date] = v
	}
	return h, nil
}

// UpdateGoal appends a goal change effective today. Past dates keep
// resolving against the entry that was in effect back then.
func (s *HabitService) UpdateGoal(ctx context.Context, ownerID, habitID string, req *habit.UpdateGoalRequest) (*habit.Habit, error) {
	if req.GoalWorkdays <= 0 || req.GoalWeekends <= 0 {
		return nil, fmt.Errorf("hour goals must be greater than zero")
	}

	h, err := s.Get(ctx, ownerID, habitID)
	if err != nil {
		return nil, err
	}
	if h.Kind != habit.KindHours {
		return nil, fmt.Errorf("habit %s does not track hours", habitID)
	}

	entry := habit.GoalEntry{
		EffectiveDate: dates.Today(),
		GoalWorkdays:  req.GoalWorkdays,
		GoalWeekends:  req.GoalWeekends,
	}
	history := goals.Compact(append(h.GoalHistory, entry))

	_, err = s.habits().Doc(habitID).Update(ctx, []firestore.Update{
		{Path: "goalHistory", Value: history},
		{Path: "goalWorkdays", Value: req.GoalWorkdays},
		{Path: "goalWeekends", Value: req.GoalWeekends},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	h.GoalHistory = history
	h.GoalWorkdays = req.GoalWorkdays
	h.GoalWeekends = req.GoalWeekends
	return h, nil
}

func (s *HabitService) Delete(ctx context.Context, ownerID, habitID string) error {
	if _, err := s.Get(ctx, ownerID, habitID); err != nil {
		return err
	}
	if _, err := s.habits().Doc(habitID).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	return nil
}

// ApplyOrderUpdates persists the order pairs a reorder commit produced,
// batched through a BulkWriter.
func (s *HabitService) ApplyOrderUpdates(ctx context.Context, updates []ordering.Update) error {
	if len(updates) == 0 {
		return nil
	}

	bw := s.client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(updates))
	for _, u := range updates {
		job, err := bw.Update(s.habits().Doc(u.HabitID), []firestore.Update{
			{Path: "order", Value: u.Order},
		})
		if err != nil {
			bw.End()
			return fmt.Errorf("failed to enqueue order update for %s: %w", u.HabitID, err)
		}
		jobs = append(jobs, job)
	}
	bw.End()

	for i, job := range jobs {
		if _, err := job.Results(); err != nil {
			return fmt.Errorf("failed to apply order update for %s: %w", updates[i].HabitID, err)
		}
	}
	return nil
}
