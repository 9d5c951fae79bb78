// Package storage persists habits, completions, and app metadata in a
// local SQLite database.
//
// Concurrency note:
//   - A Store is not safe for concurrent use by multiple goroutines without
//     external synchronization.
//   - Running multiple habitgrid processes against the same database path at
//     the same time is not supported.
package storage

import (
	"errors"

	"github.com/nholden/habitgrid/internal/models"
)

// ErrHabitNotFound is returned when a habit id does not exist.
var ErrHabitNotFound = errors.New("habit not found")

// Store is the persistence surface consumed by the state store, the backup
// engine, and the CLI.
type Store interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error
	Path() string

	// Habits
	ListActiveHabits() ([]models.Habit, error)
	ListArchivedHabits() ([]models.Habit, error)
	AllHabits() ([]models.Habit, error)
	GetHabit(id string) (models.Habit, error)
	CreateHabit(input models.HabitInput) (models.Habit, error)
	UpdateHabit(id string, patch models.HabitPatch) error
	ArchiveHabit(id string) error
	UnarchiveHabit(id string) error
	DeleteHabit(id string) error
	SetReminderHandle(id string, handle *string) error

	// Completions
	ListCompletionsInRange(habitID, start, end string) ([]models.Completion, error)
	ListAllCompletions(habitID string) ([]models.Completion, error)
	AllCompletions() ([]models.Completion, error)
	ToggleCompletion(habitID, date string) error
	IncrementCount(habitID, date string) (int, error)
	DecrementCount(habitID, date string) (int, error)
	DeleteCompletionForDate(habitID, date string) error
	GetCountForDate(habitID, date string) (int, error)
	CompletionDates(habitID, start, end string) (map[string]struct{}, error)

	// Bulk replacement for backup import. Orphaned completions (habitId not
	// in habits) are skipped, not inserted.
	ReplaceAll(habits []models.Habit, completions []models.Completion) (skipped []string, err error)

	// App metadata
	GetMeta(key string) (string, bool, error)
	SetMeta(key, value string) error
	GetMetaBool(key string) (bool, error)
	SetMetaBool(key string, value bool) error
}
