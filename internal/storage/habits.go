package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/nholden/habitgrid/internal/models"
)

const habitColumns = `id, name, description, icon, color, goalPeriod, goalTarget,
	archivedAt, createdAt, reminderEnabled, reminderTime, reminderNotifId`

func scanHabit(row interface{ Scan(...any) error }) (models.Habit, error) {
	var h models.Habit
	var description, archivedAt, reminderTime, reminderNotifID sql.NullString
	var reminderEnabled int

	err := row.Scan(
		&h.ID, &h.Name, &description, &h.Icon, &h.Color, &h.GoalPeriod, &h.GoalTarget,
		&archivedAt, &h.CreatedAt, &reminderEnabled, &reminderTime, &reminderNotifID,
	)
	if err != nil {
		return models.Habit{}, err
	}

	h.Description = fromNull(description)
	h.ArchivedAt = fromNull(archivedAt)
	h.ReminderEnabled = reminderEnabled == 1
	h.ReminderTime = fromNull(reminderTime)
	h.ReminderNotifID = fromNull(reminderNotifID)
	return h, nil
}

func (s *SQLiteStore) queryHabits(query string, args ...any) ([]models.Habit, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

// ListActiveHabits returns unarchived habits ordered by creation time.
func (s *SQLiteStore) ListActiveHabits() ([]models.Habit, error) {
	return s.queryHabits(
		`SELECT ` + habitColumns + ` FROM habits WHERE archivedAt IS NULL ORDER BY createdAt ASC`)
}

// ListArchivedHabits returns archived habits, most recently archived first.
func (s *SQLiteStore) ListArchivedHabits() ([]models.Habit, error) {
	return s.queryHabits(
		`SELECT ` + habitColumns + ` FROM habits WHERE archivedAt IS NOT NULL ORDER BY archivedAt DESC`)
}

// AllHabits returns every habit regardless of archival state, ordered by
// creation time. Used by the backup exporter.
func (s *SQLiteStore) AllHabits() ([]models.Habit, error) {
	return s.queryHabits(`SELECT ` + habitColumns + ` FROM habits ORDER BY createdAt ASC`)
}

func (s *SQLiteStore) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow(`SELECT `+habitColumns+` FROM habits WHERE id = ?`, id)
	h, err := scanHabit(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Habit{}, ErrHabitNotFound
		}
		return models.Habit{}, err
	}
	return h, nil
}

// CreateHabit assigns a fresh id and creation timestamp and inserts the
// habit unarchived.
func (s *SQLiteStore) CreateHabit(input models.HabitInput) (models.Habit, error) {
	h := models.Habit{
		ID:              newID(),
		Name:            input.Name,
		Description:     input.Description,
		Icon:            input.Icon,
		Color:           input.Color,
		GoalPeriod:      input.GoalPeriod,
		GoalTarget:      input.GoalTarget,
		CreatedAt:       nowISO(),
		ReminderEnabled: input.ReminderEnabled,
		ReminderTime:    input.ReminderTime,
	}

	reminderEnabled := 0
	if h.ReminderEnabled {
		reminderEnabled = 1
	}

	_, err := s.db.Exec(`
		INSERT INTO habits (id, name, description, icon, color, goalPeriod, goalTarget,
			archivedAt, createdAt, reminderEnabled, reminderTime, reminderNotifId)
		VALUES (?, ?, ?, ?, ?, ?, ?, NULL, ?, ?, ?, NULL)`,
		h.ID, h.Name, nullable(h.Description), h.Icon, h.Color, string(h.GoalPeriod), h.GoalTarget,
		h.CreatedAt, reminderEnabled, nullable(h.ReminderTime),
	)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to create habit: %w", err)
	}

	return h, nil
}

// UpdateHabit applies a partial patch. Fields absent from the patch are
// left untouched; an empty patch issues no write at all.
func (s *SQLiteStore) UpdateHabit(id string, patch models.HabitPatch) error {
	if patch.Empty() {
		return nil
	}

	var sets []string
	var args []any

	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.Icon != nil {
		sets = append(sets, "icon = ?")
		args = append(args, *patch.Icon)
	}
	if patch.Color != nil {
		sets = append(sets, "color = ?")
		args = append(args, *patch.Color)
	}
	if patch.GoalPeriod != nil {
		sets = append(sets, "goalPeriod = ?")
		args = append(args, string(*patch.GoalPeriod))
	}
	if patch.GoalTarget != nil {
		sets = append(sets, "goalTarget = ?")
		args = append(args, *patch.GoalTarget)
	}
	if patch.ReminderEnabled != nil {
		enabled := 0
		if *patch.ReminderEnabled {
			enabled = 1
		}
		sets = append(sets, "reminderEnabled = ?")
		args = append(args, enabled)
	}
	if patch.ClearReminderTime {
		sets = append(sets, "reminderTime = NULL")
	} else if patch.ReminderTime != nil {
		sets = append(sets, "reminderTime = ?")
		args = append(args, *patch.ReminderTime)
	}

	args = append(args, id)
	res, err := s.db.Exec("UPDATE habits SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return fmt.Errorf("failed to update habit: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrHabitNotFound
	}
	return nil
}

// ArchiveHabit soft-deletes a habit; its completions are retained.
func (s *SQLiteStore) ArchiveHabit(id string) error {
	res, err := s.db.Exec(`UPDATE habits SET archivedAt = ? WHERE id = ?`, nowISO(), id)
	if err != nil {
		return fmt.Errorf("failed to archive habit: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrHabitNotFound
	}
	return nil
}

func (s *SQLiteStore) UnarchiveHabit(id string) error {
	res, err := s.db.Exec(`UPDATE habits SET archivedAt = NULL WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to unarchive habit: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrHabitNotFound
	}
	return nil
}

// DeleteHabit hard-deletes a habit together with all its completions, as
// one transaction so a failure partway leaves nothing orphaned.
func (s *SQLiteStore) DeleteHabit(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM completions WHERE habitId = ?`, id); err != nil {
		return fmt.Errorf("failed to delete completions: %w", err)
	}

	res, err := tx.Exec(`DELETE FROM habits WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrHabitNotFound
	}

	return tx.Commit()
}

// SetReminderHandle stores (or clears, with nil) the opaque handle of the
// externally scheduled reminder.
func (s *SQLiteStore) SetReminderHandle(id string, handle *string) error {
	res, err := s.db.Exec(`UPDATE habits SET reminderNotifId = ? WHERE id = ?`, nullable(handle), id)
	if err != nil {
		return fmt.Errorf("failed to set reminder handle: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrHabitNotFound
	}
	return nil
}
