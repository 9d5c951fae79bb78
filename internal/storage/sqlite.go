package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/nholden/habitgrid/internal/migration"
	"github.com/nholden/habitgrid/internal/utils"
)

// SQLiteStore implements Store on a single SQLite database file, opened
// lazily and cached for the process lifetime.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

// Init creates the database (and its directory) and brings the schema to
// the latest version. It is idempotent and safe to call on every start.
func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	runner := migration.NewRunner(s.db, migration.Files())
	if _, err := runner.Apply(nil); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// Load opens an existing database without migrating, failing when the
// schema is newer than this binary understands.
func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'habitgrid init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	runner := migration.NewRunner(s.db, migration.Files())
	if err := runner.ValidateVersion(); err != nil {
		return err
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// DB exposes the raw handle for tooling (doctor, tests).
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

func newID() string {
	return uuid.New().String()
}

func nowISO() string {
	return utils.NowISO()
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNull(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
