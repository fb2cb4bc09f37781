package ordering

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusmindAPI/internal/types/habit"
)

func ordered(id string, kind habit.Kind, order int64) *habit.Habit {
	return &habit.Habit{ID: id, Kind: kind, Order: &order}
}

func TestMove_SwapsNeighbors(t *testing.T) {
	habits := []*habit.Habit{
		ordered("a", habit.KindTodo, 0),
		ordered("b", habit.KindTodo, 1),
		ordered("c", habit.KindTodo, 2),
	}

	s := NewSession()
	require.NoError(t, s.Move(habits, "c", DirectionUp))

	updates := s.Commit(habits)
	// a keeps 0, b and c swapped
	assert.ElementsMatch(t, []Update{
		{HabitID: "c", Order: 1},
		{HabitID: "b", Order: 2},
	}, updates)
}

func TestMove_BoundaryIsNoOp(t *testing.T) {
	habits := []*habit.Habit{
		ordered("a", habit.KindTodo, 0),
		ordered("b", habit.KindTodo, 1),
	}

	s := NewSession()
	require.NoError(t, s.Move(habits, "a", DirectionUp))
	require.NoError(t, s.Move(habits, "b", DirectionDown))
	assert.Empty(t, s.Commit(habits))
}

func TestMove_StaysInsideKindGroup(t *testing.T) {
	habits := []*habit.Habit{
		ordered("a", habit.KindTodo, 0),
		ordered("x", habit.KindHours, 0),
		ordered("y", habit.KindHours, 1),
	}

	s := NewSession()
	require.NoError(t, s.Move(habits, "y", DirectionUp))

	updates := s.Commit(habits)
	assert.ElementsMatch(t, []Update{
		{HabitID: "y", Order: 0},
		{HabitID: "x", Order: 1},
	}, updates)
}

func TestMove_UnknownHabit(t *testing.T) {
	s := NewSession()
	assert.Error(t, s.Move(nil, "nope", DirectionUp))
}

func TestCommit_RenumbersSparseOrders(t *testing.T) {
	habits := []*habit.Habit{
		ordered("a", habit.KindTodo, 10),
		ordered("b", habit.KindTodo, 20),
		ordered("c", habit.KindTodo, 30),
	}

	s := NewSession()
	updates := s.Commit(habits)
	assert.ElementsMatch(t, []Update{
		{HabitID: "a", Order: 0},
		{HabitID: "b", Order: 1},
		{HabitID: "c", Order: 2},
	}, updates)
}

func TestCommit_OrderlessFallsBackToCreatedAt(t *testing.T) {
	older := &habit.Habit{ID: "old", Kind: habit.KindTodo,
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	newer := &habit.Habit{ID: "new", Kind: habit.KindTodo,
		CreatedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}

	s := NewSession()
	updates := s.Commit([]*habit.Habit{newer, older})
	assert.ElementsMatch(t, []Update{
		{HabitID: "old", Order: 0},
		{HabitID: "new", Order: 1},
	}, updates)
}

func TestCommit_RepeatableUntilSessionEnds(t *testing.T) {
	habits := []*habit.Habit{
		ordered("a", habit.KindTodo, 0),
		ordered("b", habit.KindTodo, 1),
	}

	s := NewSession()
	require.NoError(t, s.Move(habits, "b", DirectionUp))

	first := s.Commit(habits)
	second := s.Commit(habits)
	assert.Equal(t, first, second)
}

func TestManager(t *testing.T) {
	m := NewManager()

	_, err := m.Get("owner")
	assert.ErrorIs(t, err, ErrNotStaging)

	s := m.Start("owner")
	got, err := m.Get("owner")
	require.NoError(t, err)
	assert.Same(t, s, got)

	// starting again drops staged state
	s2 := m.Start("owner")
	assert.NotSame(t, s, s2)

	m.End("owner")
	_, err = m.Get("owner")
	assert.ErrorIs(t, err, ErrNotStaging)

	m.End("owner") // idempotent
}
