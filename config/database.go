package config

import "errors"

// DefaultDatabasePath is the snapshot file used when none is configured.
const DefaultDatabasePath = "database.txt"

// DatabaseConfig locates the city snapshot.
type DatabaseConfig struct {
	Path string `json:"path"`
}

// SetDefaults applies sane defaults.
func (c *DatabaseConfig) SetDefaults() {
	if c.Path == "" {
		c.Path = DefaultDatabasePath
	}
}

// Validate checks mandatory fields.
func (c DatabaseConfig) Validate() error {
	if c.Path == "" {
		return errors.New("path is required")
	}
	return nil
}
