// Package ordering implements manual habit reordering as a staged edit:
// moves accumulate in an in-memory overlay and only commit produces the
// order writes to persist.
package ordering

import (
	"errors"
	"sort"
	"sync"

	"focusmindAPI/internal/types/habit"
)

// ErrNotStaging is returned when Move or Commit is called without an
// active staging session.
var ErrNotStaging = errors.New("reordering has not been started")

type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// Update is one (habit, order) pair the store should persist.
type Update struct {
	HabitID string
	Order   int64
}

// Session is one owner's staged reorder. The overlay shadows stored
// orders until commit or discard; the habit documents are untouched
// while staging.
type Session struct {
	mu      sync.Mutex
	overlay map[string]int64
}

func NewSession() *Session {
	return &Session{overlay: make(map[string]int64)}
}

func (s *Session) effectiveOrder(h *habit.Habit) int64 {
	if o, ok := s.overlay[h.ID]; ok {
		return o
	}
	return h.EffectiveOrder()
}

// sortGroup orders habits of one kind by effective order, id as the
// tiebreaker so the arrangement is deterministic.
func (s *Session) sortGroup(group []*habit.Habit) {
	sort.SliceStable(group, func(i, j int) bool {
		oi, oj := s.effectiveOrder(group[i]), s.effectiveOrder(group[j])
		if oi != oj {
			return oi < oj
		}
		return group[i].ID < group[j].ID
	})
}

func groupOf(habits []*habit.Habit, kind habit.Kind) []*habit.Habit {
	var group []*habit.Habit
	for _, h := range habits {
		if h.Kind == kind {
			group = append(group, h)
		}
	}
	return group
}

// Move swaps the habit with its neighbor within its kind group. Moves at
// the boundary are no-ops. The swap only touches the overlay.
func (s *Session) Move(habits []*habit.Habit, habitID string, dir Direction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var target *habit.Habit
	for _, h := range habits {
		if h.ID == habitID {
			target = h
			break
		}
	}
	if target == nil {
		return errors.New("habit not found")
	}

	group := groupOf(habits, target.Kind)
	s.sortGroup(group)

	idx := -1
	for i, h := range group {
		if h.ID == habitID {
			idx = i
			break
		}
	}

	other := idx - 1
	if dir == DirectionDown {
		other = idx + 1
	}
	if other < 0 || other >= len(group) {
		return nil
	}

	a, b := group[idx], group[other]
	s.overlay[a.ID], s.overlay[b.ID] = s.effectiveOrder(b), s.effectiveOrder(a)
	return nil
}

// Commit renumbers every kind group densely from 0 in the staged
// arrangement and returns only the pairs whose stored order actually
// changes. Commit does not clear the overlay; the caller ends the
// session once the updates are persisted, so a failed write can be
// retried.
func (s *Session) Commit(habits []*habit.Habit) []Update {
	s.mu.Lock()
	defer s.mu.Unlock()

	var updates []Update
	for _, kind := range []habit.Kind{habit.KindTodo, habit.KindTodont, habit.KindHours} {
		group := groupOf(habits, kind)
		s.sortGroup(group)
		for i, h := range group {
			order := int64(i)
			if h.Order == nil || *h.Order != order {
				updates = append(updates, Update{HabitID: h.ID, Order: order})
			}
		}
	}
	return updates
}

// Manager tracks at most one staging session per owner.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Start opens a fresh session for the owner, dropping any prior staged
// state.
func (m *Manager) Start(ownerID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := NewSession()
	m.sessions[ownerID] = s
	return s
}

// Get returns the owner's active session or ErrNotStaging.
func (m *Manager) Get(ownerID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[ownerID]
	if !ok {
		return nil, ErrNotStaging
	}
	return s, nil
}

// End discards the owner's session. Safe to call when none exists.
func (m *Manager) End(ownerID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, ownerID)
}
