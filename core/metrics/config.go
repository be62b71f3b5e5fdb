package metrics

import "github.com/kilianp07/smarthospital/core/factory"

// Config defines settings for metrics sinks and the HTTP endpoint exposing
// Prometheus metrics.
type Config struct {
	Sinks []factory.ModuleConfig `json:"sinks"`
	// Address is the listen address of the metrics server; empty disables it.
	Address string `json:"address"`
}
