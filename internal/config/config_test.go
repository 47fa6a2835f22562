package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"INTAKE_API_URL", "INTAKE_REQUEST_TIMEOUT", "INTAKE_TOKEN",
		"INTAKE_MAX_FILES", "INTAKE_MAX_FILE_SIZE", "INTAKE_POLL_INTERVAL",
		"INTAKE_EXPORT_DIR", "LOG_LEVEL", "TRACING_ENDPOINT", "TRACING_ENABLED",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "http://localhost:8000", cfg.APIBaseURL)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Empty(t, cfg.Token)
	assert.Equal(t, 20, cfg.MaxFiles)
	assert.Equal(t, int64(50<<20), cfg.MaxFileSizeBytes)
	assert.Equal(t, 2*time.Second, cfg.PollInterval)
	assert.Equal(t, ".", cfg.ExportDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "localhost:4318", cfg.TracingEndpoint)
	assert.False(t, cfg.TracingEnabled)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("INTAKE_API_URL", "https://api.plaide.example")
	t.Setenv("INTAKE_REQUEST_TIMEOUT", "5s")
	t.Setenv("INTAKE_TOKEN", "tok-123")
	t.Setenv("INTAKE_MAX_FILES", "5")
	t.Setenv("INTAKE_MAX_FILE_SIZE", "1048576")
	t.Setenv("INTAKE_POLL_INTERVAL", "250ms")
	t.Setenv("INTAKE_EXPORT_DIR", "/tmp/exports")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TRACING_ENABLED", "true")

	cfg := Load()

	assert.Equal(t, "https://api.plaide.example", cfg.APIBaseURL)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "tok-123", cfg.Token)
	assert.Equal(t, 5, cfg.MaxFiles)
	assert.Equal(t, int64(1<<20), cfg.MaxFileSizeBytes)
	assert.Equal(t, 250*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, "/tmp/exports", cfg.ExportDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.TracingEnabled)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("INTAKE_MAX_FILES", "beaucoup")
	t.Setenv("INTAKE_REQUEST_TIMEOUT", "soon")
	t.Setenv("TRACING_ENABLED", "oui")

	cfg := Load()

	assert.Equal(t, 20, cfg.MaxFiles)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.False(t, cfg.TracingEnabled)
}
