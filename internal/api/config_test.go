package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("GEARGUARD_API_URL", "")
	t.Setenv("GEARGUARD_TIMEOUT_MS", "")
	t.Setenv("GEARGUARD_LOG_LEVEL", "")

	cfg := LoadConfig()
	assert.Equal(t, "http://localhost:8000/api", cfg.BaseURL)
	assert.Equal(t, 10000, cfg.TimeoutMs)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NotEmpty(t, cfg.LogPath)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("GEARGUARD_API_URL", "https://ops.example.com/api")
	t.Setenv("GEARGUARD_TIMEOUT_MS", "2500")
	t.Setenv("GEARGUARD_LOG", "/tmp/gg.log")
	t.Setenv("GEARGUARD_LOG_LEVEL", "debug")

	cfg := LoadConfig()
	assert.Equal(t, "https://ops.example.com/api", cfg.BaseURL)
	assert.Equal(t, 2500, cfg.TimeoutMs)
	assert.Equal(t, "/tmp/gg.log", cfg.LogPath)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_BadTimeoutIgnored(t *testing.T) {
	t.Setenv("GEARGUARD_TIMEOUT_MS", "not-a-number")
	assert.Equal(t, 10000, LoadConfig().TimeoutMs)

	t.Setenv("GEARGUARD_TIMEOUT_MS", "-5")
	assert.Equal(t, 10000, LoadConfig().TimeoutMs)
}
