package logging

import (
	"github.com/kilianp07/smarthospital/core/factory"
)

// StoreConfig holds the settings understood by the built-in stores.
type StoreConfig struct {
	Path       string `json:"path"`
	MaxSizeMB  int    `json:"max_size_mb"`
	MaxBackups int    `json:"max_backups"`
	MaxAgeDays int    `json:"max_age_days"`
}

var storeRegistry = factory.NewRegistry[LogStore]()

// RegisterStore adds a log store factory identified by name.
func RegisterStore(name string, f factory.Factory[LogStore]) error {
	return storeRegistry.Register(name, f)
}

// NewStore creates the store described by cfg.
func NewStore(cfg factory.ModuleConfig) (LogStore, error) {
	return storeRegistry.Create(cfg)
}

// Backends lists the registered store types.
func Backends() []string { return storeRegistry.Types() }

func decodeStoreConfig(raw map[string]any) (StoreConfig, error) {
	var c StoreConfig
	if err := factory.Decode(raw, &c); err != nil {
		return c, err
	}
	return c, nil
}

func init() {
	_ = RegisterStore("jsonl", func(raw map[string]any) (LogStore, error) {
		c, err := decodeStoreConfig(raw)
		if err != nil {
			return nil, err
		}
		return NewJSONLStore(c.Path)
	})
	_ = RegisterStore("rotating", func(raw map[string]any) (LogStore, error) {
		c, err := decodeStoreConfig(raw)
		if err != nil {
			return nil, err
		}
		return NewRotatingJSONLStore(c.Path, c.MaxSizeMB, c.MaxBackups, c.MaxAgeDays)
	})
	_ = RegisterStore("sqlite", func(raw map[string]any) (LogStore, error) {
		c, err := decodeStoreConfig(raw)
		if err != nil {
			return nil, err
		}
		return NewSQLiteStore(c.Path)
	})
}
