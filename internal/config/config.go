package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// DefaultGenerationDays is the recurring-instance horizon used when the
	// settings file carries no value.
	DefaultGenerationDays = 30
	minGenerationDays     = 1
	maxGenerationDays     = 365
)

// Config keeps runtime settings for the application.
type Config struct {
	DatabasePath string
	SweepTime    string // HH:MM, daily reconciliation sweep
}

// UserSettings holds the user-tunable values consumed read-only by the
// orchestration layer. Theme is stored and surfaced but never interpreted
// here.
type UserSettings struct {
	RecurringTaskGenerationDays int    `mapstructure:"recurring_task_generation_days"`
	Theme                       string `mapstructure:"theme"`
}

// Load reads runtime configuration from environment variables with sane
// defaults.
func Load() (Config, error) {
	cfg := Config{
		DatabasePath: strings.TrimSpace(os.Getenv("TASKREMINDER_DB")),
		SweepTime:    strings.TrimSpace(os.Getenv("TASKREMINDER_SWEEP_TIME")),
	}

	if cfg.DatabasePath == "" {
		cfg.DatabasePath = "task_reminder.db"
	}
	if cfg.SweepTime == "" {
		cfg.SweepTime = "03:00"
	}

	return cfg, nil
}

// SettingsStore reads user settings from a YAML file via viper. Values are
// re-read on every call so external edits take effect without a restart.
type SettingsStore struct {
	path string
}

// DefaultSettingsPath returns ~/.config/taskreminder/settings.yaml, falling
// back to the working directory when the home dir is unknown.
func DefaultSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "settings.yaml")
	}
	return filepath.Join(home, ".config", "taskreminder", "settings.yaml")
}

func NewSettingsStore(path string) *SettingsStore {
	if path == "" {
		path = DefaultSettingsPath()
	}
	return &SettingsStore{path: path}
}

// Settings returns the current user settings. A missing file yields the
// defaults; out-of-range horizon values are clamped to 1..365.
func (s *SettingsStore) Settings() (UserSettings, error) {
	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType("yaml")
	v.SetDefault("recurring_task_generation_days", DefaultGenerationDays)
	v.SetDefault("theme", "system")

	if err := v.ReadInConfig(); err != nil {
		var pathErr *os.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return UserSettings{}, fmt.Errorf("read settings %s: %w", s.path, err)
		}
	}

	var settings UserSettings
	if err := v.Unmarshal(&settings); err != nil {
		return UserSettings{}, fmt.Errorf("parse settings %s: %w", s.path, err)
	}
	if settings.RecurringTaskGenerationDays < minGenerationDays {
		settings.RecurringTaskGenerationDays = minGenerationDays
	}
	if settings.RecurringTaskGenerationDays > maxGenerationDays {
		settings.RecurringTaskGenerationDays = maxGenerationDays
	}
	return settings, nil
}
