package storage

import (
	"fmt"

	"github.com/nholden/habitgrid/internal/models"
)

// ReplaceAll swaps the entire dataset for the given one inside a single
// transaction: a failure partway leaves the database in its pre-import
// state. Incoming reminder handles are discarded (the importer reschedules
// and persists fresh ones afterwards), and completions whose habitId is not
// among the incoming habits are skipped; their habit ids are returned so
// the caller can log them.
func (s *SQLiteStore) ReplaceAll(habits []models.Habit, completions []models.Completion) ([]string, error) {
	validIDs := make(map[string]struct{}, len(habits))
	for _, h := range habits {
		validIDs[h.ID] = struct{}{}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM completions`); err != nil {
		return nil, fmt.Errorf("failed to clear completions: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM habits`); err != nil {
		return nil, fmt.Errorf("failed to clear habits: %w", err)
	}

	habitStmt, err := tx.Prepare(`
		INSERT INTO habits (id, name, description, icon, color, goalPeriod, goalTarget,
			archivedAt, createdAt, reminderEnabled, reminderTime, reminderNotifId)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NULL)`)
	if err != nil {
		return nil, err
	}
	defer habitStmt.Close()

	for _, h := range habits {
		reminderEnabled := 0
		if h.ReminderEnabled {
			reminderEnabled = 1
		}
		_, err := habitStmt.Exec(
			h.ID, h.Name, nullable(h.Description), h.Icon, h.Color,
			string(h.GoalPeriod), h.GoalTarget, nullable(h.ArchivedAt), h.CreatedAt,
			reminderEnabled, nullable(h.ReminderTime),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert habit %s: %w", h.ID, err)
		}
	}

	compStmt, err := tx.Prepare(`
		INSERT INTO completions (id, habitId, date, count, createdAt)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, err
	}
	defer compStmt.Close()

	var skipped []string
	for _, c := range completions {
		if _, ok := validIDs[c.HabitID]; !ok {
			skipped = append(skipped, c.HabitID)
			continue
		}
		id := c.ID
		if id == "" {
			id = newID()
		}
		count := c.Count
		if count < 1 {
			count = 1
		}
		createdAt := c.CreatedAt
		if createdAt == "" {
			createdAt = nowISO()
		}
		if _, err := compStmt.Exec(id, c.HabitID, c.Date, count, createdAt); err != nil {
			return nil, fmt.Errorf("failed to insert completion for habit %s on %s: %w", c.HabitID, c.Date, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return skipped, nil
}
