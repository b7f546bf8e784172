package api

import (
	"os"
	"path/filepath"
	"strconv"
)

// Config holds all client-side configuration.
type Config struct {
	BaseURL   string
	TimeoutMs int
	LogPath   string
	LogLevel  string
}

// DefaultConfig returns a Config pointing at a local development API.
func DefaultConfig() Config {
	return Config{
		BaseURL:   "http://localhost:8000/api",
		TimeoutMs: 10000,
		LogLevel:  "info",
	}
}

// LoadConfig reads configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("GEARGUARD_API_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("GEARGUARD_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("GEARGUARD_LOG"); v != "" {
		cfg.LogPath = v
	}
	if v := os.Getenv("GEARGUARD_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	if cfg.LogPath == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.LogPath = filepath.Join(home, ".gearguard", "gearguard.log")
		}
	}

	return cfg
}
