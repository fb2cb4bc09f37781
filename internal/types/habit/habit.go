package habit

import (
	"time"
)

type Kind string

const (
	KindTodo   Kind = "todo"   // do the thing, boolean per day
	KindTodont Kind = "todont" // avoid the thing, boolean per day
	KindHours  Kind = "hours"  // quantitative, hours per day against a goal
)

// Wire literals written by old clients. Documents are normalized on read,
// never rewritten in place.
const (
	legacyBoolean = "boolean"
	legacyNumeric = "numeric"
	legacyHoras   = "horas"
)

// NormalizeKind maps legacy stored kind literals onto the closed union.
// Unknown values default to todo so old or hand-edited documents stay usable.
func NormalizeKind(raw string) Kind {
	switch raw {
	case string(KindTodo), legacyBoolean:
		return KindTodo
	case string(KindTodont):
		return KindTodont
	case string(KindHours), legacyNumeric, legacyHoras:
		return KindHours
	default:
		return KindTodo
	}
}

// GoalEntry is one append-only goal change for an hours habit. Entries with
// the same effective date can coexist; the last-appended one wins.
type GoalEntry struct {
	EffectiveDate string  `json:"effectiveDate" firestore:"effectiveDate"`
	GoalWorkdays  float64 `json:"goalWorkdays" firestore:"goalWorkdays"`
	GoalWeekends  float64 `json:"goalWeekends" firestore:"goalWeekends"`
}

type Habit struct {
	ID      string `json:"id" firestore:"-"`
	OwnerID string `json:"ownerId" firestore:"ownerId"`
	Name    string `json:"name" firestore:"name"`
	Kind    Kind   `json:"kind" firestore:"type"`

	// Days the habit applies to, 0 = Sunday. Empty means every day.
	DaysOfWeek []time.Weekday `json:"daysOfWeek,omitempty" firestore:"daysOfWeek"`

	// Goal is the legacy single scalar goal; kept for documents created
	// before the workday/weekend split existed.
	Goal         float64     `json:"goal,omitempty" firestore:"goal"`
	GoalWorkdays float64     `json:"goalWorkdays,omitempty" firestore:"goalWorkdays"`
	GoalWeekends float64     `json:"goalWeekends,omitempty" firestore:"goalWeekends"`
	GoalHistory  []GoalEntry `json:"goalHistory,omitempty" firestore:"goalHistory"`

	// History maps "2006-01-02" date keys to recorded values: bool for
	// todo/todont, a number for hours. Values come back from the store
	// untyped, so readers go through the completion package's coercions.
	History map[string]any `json:"history" firestore:"history"`

	// Order is the manual sort position within the habit's kind group.
	// nil means never assigned; display falls back to CreatedAt.
	Order *int64 `json:"order,omitempty" firestore:"order"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
}

// Normalize rewrites legacy field values in memory so the rest of the code
// only ever sees canonical kinds and a non-nil history map.
func (h *Habit) Normalize() {
	h.Kind = NormalizeKind(string(h.Kind))
	if h.History == nil {
		h.History = map[string]any{}
	}
}

// EffectiveOrder is the sort key within a kind group: the assigned order,
// or the creation timestamp in epoch milliseconds for order-less habits.
func (h *Habit) EffectiveOrder() int64 {
	if h.Order != nil {
		return *h.Order
	}
	return h.CreatedAt.UnixMilli()
}
