// Package config resolves application settings from an optional YAML file
// under the user config directory, with HABITGRID_* environment overrides.
// CLI flags take precedence over both.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds resolved application settings.
type Config struct {
	DBPath        string `mapstructure:"db_path"`
	BackupDir     string `mapstructure:"backup_dir"`
	GridRangeDays int    `mapstructure:"grid_range_days"`
	Debug         bool   `mapstructure:"debug"`
}

// Dir returns the habitgrid config directory (~/.config/habitgrid on
// Linux).
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config dir: %w", err)
	}
	return filepath.Join(base, "habitgrid"), nil
}

// Load reads config.yaml from the habitgrid config directory when present
// and applies defaults and environment overrides. A missing file is not an
// error.
func Load() (Config, error) {
	dir, err := Dir()
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetEnvPrefix("HABITGRID")
	v.AutomaticEnv()

	v.SetDefault("db_path", filepath.Join(dir, "habitgrid.db"))
	v.SetDefault("backup_dir", filepath.Join(dir, "backups"))
	v.SetDefault("grid_range_days", 180)
	v.SetDefault("debug", false)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.GridRangeDays < 1 {
		return Config{}, fmt.Errorf("grid_range_days must be positive")
	}
	return cfg, nil
}
