// Package config provides environment configuration for the intake client.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the intake client.
type Config struct {
	// Backend settings
	APIBaseURL     string
	RequestTimeout time.Duration

	// Auth settings
	Token string

	// Upload settings
	MaxFiles         int
	MaxFileSizeBytes int64

	// Analysis settings
	PollInterval time.Duration

	// Export settings
	ExportDir string

	// Logging
	LogLevel string

	// Tracing
	TracingEndpoint string
	TracingEnabled  bool
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		// Backend
		APIBaseURL:     getEnv("INTAKE_API_URL", "http://localhost:8000"),
		RequestTimeout: getDurationEnv("INTAKE_REQUEST_TIMEOUT", 30*time.Second),

		// Auth
		Token: getEnv("INTAKE_TOKEN", ""),

		// Uploads
		MaxFiles:         getIntEnv("INTAKE_MAX_FILES", 20),
		MaxFileSizeBytes: getInt64Env("INTAKE_MAX_FILE_SIZE", 50<<20),

		// Analysis
		PollInterval: getDurationEnv("INTAKE_POLL_INTERVAL", 2*time.Second),

		// Export
		ExportDir: getEnv("INTAKE_EXPORT_DIR", "."),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "info"),

		// Tracing
		TracingEndpoint: getEnv("TRACING_ENDPOINT", "localhost:4318"),
		TracingEnabled:  getBoolEnv("TRACING_ENABLED", false),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
