// Package backup implements the versioned JSON export/import format. An
// exported envelope is the full dataset; importing replaces everything and
// reconciles reminder scheduling as a best-effort side effect.
package backup

import (
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/nholden/habitgrid/internal/logger"
	"github.com/nholden/habitgrid/internal/models"
	"github.com/nholden/habitgrid/internal/reminder"
	"github.com/nholden/habitgrid/internal/storage"
	"github.com/nholden/habitgrid/internal/utils"
)

const (
	// SchemaVersion is the envelope version this binary reads and writes.
	SchemaVersion = 1
	// AppName identifies envelopes produced by this application.
	AppName = "HabitGrid"
)

// Envelope is the versioned full-dataset snapshot. It exists only as an
// interchange format and is never persisted internally.
type Envelope struct {
	SchemaVersion int                 `json:"schemaVersion"`
	App           string              `json:"app"`
	ExportedAt    string              `json:"exportedAt"`
	Habits        []models.Habit      `json:"habits"`
	Completions   []models.Completion `json:"completions"`
}

// Export reads the whole dataset, habits ordered by creation time and
// completions by date, and wraps it in a fresh envelope.
func Export(store storage.Store) (Envelope, error) {
	habits, err := store.AllHabits()
	if err != nil {
		return Envelope{}, fmt.Errorf("failed to read habits: %w", err)
	}

	completions, err := store.AllCompletions()
	if err != nil {
		return Envelope{}, fmt.Errorf("failed to read completions: %w", err)
	}

	if habits == nil {
		habits = []models.Habit{}
	}
	if completions == nil {
		completions = []models.Completion{}
	}

	return Envelope{
		SchemaVersion: SchemaVersion,
		App:           AppName,
		ExportedAt:    utils.NowISO(),
		Habits:        habits,
		Completions:   completions,
	}, nil
}

var dayRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Validate structurally checks arbitrary JSON against the envelope shape
// before anything trusts it. It fails on the first violation found with an
// error naming the broken constraint.
func Validate(data []byte) (Envelope, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Envelope{}, fmt.Errorf("invalid backup: not a JSON object")
	}

	var version int
	if err := json.Unmarshal(raw["schemaVersion"], &version); err != nil || version != SchemaVersion {
		return Envelope{}, fmt.Errorf("invalid backup: unsupported schema version")
	}

	var app string
	if err := json.Unmarshal(raw["app"], &app); err != nil || app != AppName {
		return Envelope{}, fmt.Errorf("invalid backup: not a %s backup file", AppName)
	}

	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, fmt.Errorf("invalid backup: malformed envelope: %v", err)
	}
	if raw["habits"] == nil || string(raw["habits"]) == "null" {
		return Envelope{}, fmt.Errorf("invalid backup: habits must be an array")
	}
	if raw["completions"] == nil || string(raw["completions"]) == "null" {
		return Envelope{}, fmt.Errorf("invalid backup: completions must be an array")
	}

	for i, h := range env.Habits {
		if h.ID == "" {
			return Envelope{}, fmt.Errorf("invalid backup: habit %d is missing an id", i)
		}
		if h.Name == "" {
			return Envelope{}, fmt.Errorf("invalid backup: habit %q is missing a name", h.ID)
		}
		if !h.GoalPeriod.Valid() {
			return Envelope{}, fmt.Errorf("invalid backup: habit %q has an invalid goal period %q", h.ID, h.GoalPeriod)
		}
		if h.GoalTarget < 1 {
			return Envelope{}, fmt.Errorf("invalid backup: habit %q must have a goal target >= 1", h.ID)
		}
		if h.CreatedAt == "" {
			return Envelope{}, fmt.Errorf("invalid backup: habit %q is missing createdAt", h.ID)
		}
	}

	for i, c := range env.Completions {
		if c.HabitID == "" {
			return Envelope{}, fmt.Errorf("invalid backup: completion %d is missing a habitId", i)
		}
		if !dayRe.MatchString(c.Date) {
			return Envelope{}, fmt.Errorf("invalid backup: completion %d has an invalid date %q (expected YYYY-MM-DD)", i, c.Date)
		}
	}

	return env, nil
}

// ImportReplace destructively replaces the whole dataset with the
// envelope's contents.
//
// Reminder side effects sit outside the data transaction on purpose:
// cancelling the old reminders and scheduling the new ones are external,
// best-effort operations that must never roll back a successful data
// replacement. Completions referencing habits missing from the envelope
// are skipped, not inserted.
func ImportReplace(store storage.Store, sched reminder.Scheduler, env Envelope) error {
	existing, err := store.AllHabits()
	if err != nil {
		return fmt.Errorf("failed to read existing habits: %w", err)
	}
	for _, h := range existing {
		if h.ReminderNotifID == nil {
			continue
		}
		if err := sched.Cancel(*h.ReminderNotifID); err != nil {
			logger.Warn("failed to cancel reminder", "habit", h.ID, "error", err)
		}
	}

	skipped, err := store.ReplaceAll(env.Habits, env.Completions)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	for _, habitID := range skipped {
		logger.Warn("skipped completion for missing habit", "habit", habitID)
	}

	for _, h := range env.Habits {
		if !h.ReminderEnabled || h.ReminderTime == nil {
			continue
		}
		handle, err := sched.Schedule(h.ID, h.Name, *h.ReminderTime)
		if err != nil {
			logger.Warn("failed to reschedule reminder", "habit", h.ID, "error", err)
			continue
		}
		if handle == "" {
			continue
		}
		if err := store.SetReminderHandle(h.ID, &handle); err != nil {
			logger.Warn("failed to persist reminder handle", "habit", h.ID, "error", err)
		}
	}

	return nil
}
