package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

// GetMeta reads an app-level key/value flag. The second return value is
// false when the key has never been set.
func (s *SQLiteStore) GetMeta(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM app_meta WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

// SetMeta upserts an app-level key/value flag.
func (s *SQLiteStore) SetMeta(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO app_meta (key, value, updatedAt) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = excluded.updatedAt`,
		key, value, nowISO())
	if err != nil {
		return fmt.Errorf("failed to set app meta %q: %w", key, err)
	}
	return nil
}

// GetMetaBool reads a flag stored as "1"/"0"; unset keys read as false.
func (s *SQLiteStore) GetMetaBool(key string) (bool, error) {
	value, _, err := s.GetMeta(key)
	if err != nil {
		return false, err
	}
	return value == "1", nil
}

func (s *SQLiteStore) SetMetaBool(key string, value bool) error {
	if value {
		return s.SetMeta(key, "1")
	}
	return s.SetMeta(key, "0")
}
