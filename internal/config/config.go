package config

import (
	"os"

	"logscope/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Paths    PathConfig
	Security SecurityConfig
	Session  SessionConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port string
}

// PathConfig holds input and output directory settings
type PathConfig struct {
	DataDir    string
	ReportsDir string
}

// SecurityConfig names the event-type sentinels used by the security-event
// metrics. The values match what the log generator emits; they are
// overridable in case the generator's vocabulary changes.
type SecurityConfig struct {
	BlankEvent string
	DOSEvent   string
}

// SessionConfig holds the definition of a completed session
type SessionConfig struct {
	CompletedStatus string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Paths: PathConfig{
			DataDir:    getEnvOrDefault("DATA_DIR", "./data"),
			ReportsDir: getEnvOrDefault("REPORTS_DIR", "./profiling_reports"),
		},
		Security: SecurityConfig{
			BlankEvent: getEnvOrDefault("SECURITY_BLANK_EVENT", "BLANK_REQUEST"),
			DOSEvent:   getEnvOrDefault("SECURITY_DOS_EVENT", "DOS_ATTACK"),
		},
		Session: SessionConfig{
			CompletedStatus: getEnvOrDefault("SESSION_COMPLETED_STATUS", "COMPLETED"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Paths.DataDir == "" {
		return errors.ConfigInvalid("data directory is required")
	}
	if config.Paths.ReportsDir == "" {
		return errors.ConfigInvalid("reports directory is required")
	}
	if config.Security.BlankEvent == "" || config.Security.DOSEvent == "" {
		return errors.ConfigInvalid("security event sentinels must not be empty")
	}
	if config.Session.CompletedStatus == "" {
		return errors.ConfigInvalid("session completed status must not be empty")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
