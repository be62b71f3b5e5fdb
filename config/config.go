package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/smarthospital/core/dispatch"
	"github.com/kilianp07/smarthospital/core/metrics"
)

type Config struct {
	Database DatabaseConfig  `json:"database"`
	Dispatch dispatch.Config `json:"dispatch"`
	Metrics  metrics.Config  `json:"metrics"`
	Logging  LoggingConfig   `json:"logging"`
	Log      LogConfig       `json:"log"`
	Sentry   SentryConfig    `json:"sentry"`
	Server   ServerConfig    `json:"server"`
}

// Load reads the YAML or JSON file at path, then applies K_ prefixed
// environment overrides (K_DATABASE__PATH sets database.path). An empty path
// loads only the environment and defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		var parser koanf.Parser
		switch ext := strings.ToLower(filepath.Ext(path)); ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("K_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "k_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a configuration with every default applied.
func Default() *Config {
	var cfg Config
	cfg.SetDefaults()
	return &cfg
}

// SetDefaults applies the defaults of every section.
func (c *Config) SetDefaults() {
	c.Database.SetDefaults()
	c.Dispatch.SetDefaults()
	c.Logging.SetDefaults()
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Database.Validate(); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	return nil
}
