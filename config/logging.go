package config

import (
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/kilianp07/smarthospital/core/factory"
)

// LoggingConfig defines settings for the admission log store and rotation.
type LoggingConfig struct {
	// Backend selects the log store type: "jsonl", "rotating", "sqlite" or
	// "none" to disable the audit trail.
	Backend string `json:"backend"`
	// Path is the file location of the log store.
	Path string `json:"path"`
	// MaxSizeMB triggers rotation when the file exceeds this size in megabytes.
	MaxSizeMB int `json:"max_size_mb"`
	// MaxBackups limits the number of rotated files to keep.
	MaxBackups int `json:"max_backups"`
	// MaxAgeDays removes rotated files older than this number of days.
	MaxAgeDays int `json:"max_age_days"`
}

var backends = []string{"none", "jsonl", "rotating", "sqlite"}

// SetDefaults applies sane defaults.
func (c *LoggingConfig) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "jsonl"
	}
	if c.Path == "" {
		switch c.Backend {
		case "sqlite":
			c.Path = "admissions.db"
		default:
			c.Path = "admissions.jsonl"
		}
	}
	if c.Backend == "rotating" && c.MaxSizeMB == 0 {
		c.MaxSizeMB = 10
	}
}

// Validate checks mandatory fields.
func (c LoggingConfig) Validate() error {
	if !slices.Contains(backends, c.Backend) {
		return fmt.Errorf("unknown backend %s", c.Backend)
	}
	if c.Path == "" {
		return fmt.Errorf("path is required")
	}
	return nil
}

// Enabled reports whether an admission log store should be opened.
func (c LoggingConfig) Enabled() bool { return c.Backend != "none" }

// Module returns the store module configuration understood by the
// admission log factory.
func (c LoggingConfig) Module() factory.ModuleConfig {
	return factory.ModuleConfig{
		Type: c.Backend,
		Conf: map[string]any{
			"path":         c.Path,
			"max_size_mb":  c.MaxSizeMB,
			"max_backups":  c.MaxBackups,
			"max_age_days": c.MaxAgeDays,
		},
	}
}

// LogConfig controls the process logger. APP_ENV and LOG_LEVEL still apply
// when the fields are empty.
type LogConfig struct {
	Level string `json:"level"`
}

// Validate checks the level name.
func (c LogConfig) Validate() error {
	if c.Level == "" {
		return nil
	}
	if _, err := zerolog.ParseLevel(c.Level); err != nil {
		return err
	}
	return nil
}
