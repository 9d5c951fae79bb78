package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/nholden/habitgrid/internal/models"
)

const completionColumns = `id, habitId, date, count, createdAt`

func scanCompletion(row interface{ Scan(...any) error }) (models.Completion, error) {
	var c models.Completion
	err := row.Scan(&c.ID, &c.HabitID, &c.Date, &c.Count, &c.CreatedAt)
	return c, err
}

func (s *SQLiteStore) queryCompletions(query string, args ...any) ([]models.Completion, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var completions []models.Completion
	for rows.Next() {
		c, err := scanCompletion(rows)
		if err != nil {
			return nil, err
		}
		completions = append(completions, c)
	}
	return completions, rows.Err()
}

// ListCompletionsInRange returns a habit's completions with start <= date <= end,
// ascending by date.
func (s *SQLiteStore) ListCompletionsInRange(habitID, start, end string) ([]models.Completion, error) {
	return s.queryCompletions(`
		SELECT `+completionColumns+` FROM completions
		WHERE habitId = ? AND date >= ? AND date <= ?
		ORDER BY date ASC`, habitID, start, end)
}

func (s *SQLiteStore) ListAllCompletions(habitID string) ([]models.Completion, error) {
	return s.queryCompletions(`
		SELECT `+completionColumns+` FROM completions WHERE habitId = ? ORDER BY date ASC`, habitID)
}

// AllCompletions returns every completion row ordered by date. Used by the
// backup exporter.
func (s *SQLiteStore) AllCompletions() ([]models.Completion, error) {
	return s.queryCompletions(`SELECT ` + completionColumns + ` FROM completions ORDER BY date ASC`)
}

func (s *SQLiteStore) getCompletion(habitID, date string) (models.Completion, bool, error) {
	row := s.db.QueryRow(`
		SELECT `+completionColumns+` FROM completions WHERE habitId = ? AND date = ?`, habitID, date)
	c, err := scanCompletion(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Completion{}, false, nil
		}
		return models.Completion{}, false, err
	}
	return c, true, nil
}

func (s *SQLiteStore) insertCompletion(habitID, date string, count int) error {
	_, err := s.db.Exec(`
		INSERT INTO completions (id, habitId, date, count, createdAt)
		VALUES (?, ?, ?, ?, ?)`,
		newID(), habitID, date, count, nowISO())
	if err != nil {
		return fmt.Errorf("failed to insert completion: %w", err)
	}
	return nil
}

// ToggleCompletion flips the binary completion state for a day: an existing
// row is deleted, a missing one is inserted with count 1.
func (s *SQLiteStore) ToggleCompletion(habitID, date string) error {
	_, exists, err := s.getCompletion(habitID, date)
	if err != nil {
		return err
	}
	if exists {
		return s.DeleteCompletionForDate(habitID, date)
	}
	return s.insertCompletion(habitID, date, 1)
}

// IncrementCount adds one repetition for the day and returns the new count,
// creating the row at 1 when absent.
func (s *SQLiteStore) IncrementCount(habitID, date string) (int, error) {
	c, exists, err := s.getCompletion(habitID, date)
	if err != nil {
		return 0, err
	}
	if !exists {
		if err := s.insertCompletion(habitID, date, 1); err != nil {
			return 0, err
		}
		return 1, nil
	}

	newCount := c.Count + 1
	_, err = s.db.Exec(`UPDATE completions SET count = ? WHERE habitId = ? AND date = ?`,
		newCount, habitID, date)
	if err != nil {
		return 0, fmt.Errorf("failed to increment count: %w", err)
	}
	return newCount, nil
}

// DecrementCount removes one repetition for the day and returns the new
// count. Reaching zero deletes the row; a missing row is a no-op at 0.
func (s *SQLiteStore) DecrementCount(habitID, date string) (int, error) {
	c, exists, err := s.getCompletion(habitID, date)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, nil
	}

	newCount := c.Count - 1
	if newCount <= 0 {
		if err := s.DeleteCompletionForDate(habitID, date); err != nil {
			return 0, err
		}
		return 0, nil
	}

	_, err = s.db.Exec(`UPDATE completions SET count = ? WHERE habitId = ? AND date = ?`,
		newCount, habitID, date)
	if err != nil {
		return 0, fmt.Errorf("failed to decrement count: %w", err)
	}
	return newCount, nil
}

func (s *SQLiteStore) DeleteCompletionForDate(habitID, date string) error {
	_, err := s.db.Exec(`DELETE FROM completions WHERE habitId = ? AND date = ?`, habitID, date)
	if err != nil {
		return fmt.Errorf("failed to delete completion: %w", err)
	}
	return nil
}

// GetCountForDate returns the repetition count for a day, 0 when absent.
func (s *SQLiteStore) GetCountForDate(habitID, date string) (int, error) {
	c, exists, err := s.getCompletion(habitID, date)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, nil
	}
	return c.Count, nil
}

// CompletionDates returns the set of dates with at least one completion in
// the inclusive range, ignoring counts. This is the representation the
// streak and grid logic consume.
func (s *SQLiteStore) CompletionDates(habitID, start, end string) (map[string]struct{}, error) {
	rows, err := s.db.Query(`
		SELECT date FROM completions
		WHERE habitId = ? AND date >= ? AND date <= ?`, habitID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dates := make(map[string]struct{})
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates[d] = struct{}{}
	}
	return dates, rows.Err()
}
