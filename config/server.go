package config

// ServerConfig protects the read-only admission log endpoint served next to
// /metrics. An empty token disables authentication.
type ServerConfig struct {
	Token string `json:"token"`
}
