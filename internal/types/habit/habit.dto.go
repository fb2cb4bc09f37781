package habit

type CreateHabitRequest struct {
	Name string `json:"name"`
	Kind string `json:"kind"`

	// Pointer so "absent" (every day) and "present but empty" (invalid)
	// can be told apart.
	DaysOfWeek *[]int `json:"daysOfWeek,omitempty"`

	// Only read for hours habits.
	GoalWorkdays float64 `json:"goalWorkdays,omitempty"`
	GoalWeekends float64 `json:"goalWeekends,omitempty"`
}

type RenameHabitRequest struct {
	Name string `json:"name"`
}

type UpdateGoalRequest struct {
	GoalWorkdays float64 `json:"goalWorkdays"`
	GoalWeekends float64 `json:"goalWeekends"`
}

type UpdateProgressRequest struct {
	Date  string `json:"date"`
	Value any    `json:"value"`
}

type SaveHoursRequest struct {
	Values map[string]float64 `json:"values"` // date -> hours
}

type MoveHabitRequest struct {
	HabitID   string `json:"habitId"`
	Direction string `json:"direction"` // "up" or "down"
}

// WeekPreviewRequest carries unsaved client-side hour edits so weekly
// totals can reflect them before they are persisted.
type WeekPreviewRequest struct {
	Date    string                        `json:"date"`
	Pending map[string]map[string]float64 `json:"pending,omitempty"` // habitId -> date -> hours
}
