package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nholden/habitgrid/internal/utils"
)

// FileSuffix is the extension carried by exported backup files.
const FileSuffix = ".habitgrid.json"

// Filename returns a timestamped backup file name.
func Filename() string {
	return fmt.Sprintf("habitgrid-backup-%s%s", utils.FilenameStamp(), FileSuffix)
}

// WriteFile serializes the envelope into dir under a timestamped name and
// returns the written path.
func WriteFile(env Envelope, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize backup: %w", err)
	}

	path := filepath.Join(dir, Filename())
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write backup file: %w", err)
	}
	return path, nil
}

// ReadFile reads and validates a backup file.
func ReadFile(path string) (Envelope, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Envelope{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	return Validate(data)
}
