// Package config resolves runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	// DBPath is the SQLite database file, JORNADA_DB.
	DBPath string
	// LogPath receives the service use-case log when set, JORNADA_LOG.
	// Empty disables it.
	LogPath string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBPath:  os.Getenv("JORNADA_DB"),
		LogPath: os.Getenv("JORNADA_LOG"),
	}

	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, &ConfigError{Field: "JORNADA_DB", Message: fmt.Sprintf("JORNADA_DB unset and home directory unavailable: %v", err)}
		}
		cfg.DBPath = filepath.Join(home, ".jornada", "jornada.db")
	}

	return cfg, nil
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}
