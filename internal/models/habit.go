package models

// GoalPeriod is the recurrence window over which a habit's target is evaluated.
type GoalPeriod string

const (
	PeriodDay   GoalPeriod = "day"
	PeriodWeek  GoalPeriod = "week"
	PeriodMonth GoalPeriod = "month"
)

// Valid reports whether p is one of the known goal periods.
func (p GoalPeriod) Valid() bool {
	switch p {
	case PeriodDay, PeriodWeek, PeriodMonth:
		return true
	}
	return false
}

// Habit represents a recurring practice to track.
//
// Timestamps are stored as strings: CreatedAt and ArchivedAt are RFC3339
// datetimes, ReminderTime is an HH:MM clock. JSON field names match the
// backup envelope format.
type Habit struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Description     *string    `json:"description"`
	Icon            string     `json:"icon"`
	Color           string     `json:"color"`
	GoalPeriod      GoalPeriod `json:"goalPeriod"`
	GoalTarget      int        `json:"goalTarget"`
	ArchivedAt      *string    `json:"archivedAt"`
	CreatedAt       string     `json:"createdAt"`
	ReminderEnabled bool       `json:"reminderEnabled"`
	ReminderTime    *string    `json:"reminderTime"`
	ReminderNotifID *string    `json:"reminderNotifId"`
}

// Archived reports whether the habit has been soft-deleted.
func (h Habit) Archived() bool {
	return h.ArchivedAt != nil
}

// HabitInput carries the caller-supplied fields for creating a habit.
type HabitInput struct {
	Name            string
	Description     *string
	Icon            string
	Color           string
	GoalPeriod      GoalPeriod
	GoalTarget      int
	ReminderEnabled bool
	ReminderTime    *string
}

// HabitPatch is a partial update: nil fields are left untouched.
// ClearReminderTime sets reminderTime to NULL and wins over ReminderTime.
type HabitPatch struct {
	Name              *string
	Description       *string
	Icon              *string
	Color             *string
	GoalPeriod        *GoalPeriod
	GoalTarget        *int
	ReminderEnabled   *bool
	ReminderTime      *string
	ClearReminderTime bool
}

// Empty reports whether the patch modifies no fields. Empty patches must
// not issue a write.
func (p HabitPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Icon == nil &&
		p.Color == nil && p.GoalPeriod == nil && p.GoalTarget == nil &&
		p.ReminderEnabled == nil && p.ReminderTime == nil && !p.ClearReminderTime
}

// Completion records that a habit was performed on a given calendar day.
// Date is a YYYY-MM-DD string; at most one row exists per (HabitID, Date).
type Completion struct {
	ID        string `json:"id"`
	HabitID   string `json:"habitId"`
	Date      string `json:"date"`
	Count     int    `json:"count"`
	CreatedAt string `json:"createdAt"`
}
