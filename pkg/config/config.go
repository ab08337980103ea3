// Package config reads client configuration from MADING_* environment
// variables with sensible defaults. Command-line flags override it.
package config

import (
	"os"
	"strconv"

	"github.com/stembase/mading/pkg/session"
)

// Config holds all client configuration.
type Config struct {
	// APIBaseURL is the root of the mading REST API.
	APIBaseURL string
	// SessionFile is the path of the persisted session.
	SessionFile string
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
	// ArticlesPerPage sizes the public browse pages.
	ArticlesPerPage int
	// UsersPerPage sizes the admin user pages.
	UsersPerPage int
}

// Load builds a Config from the environment.
func Load() (*Config, error) {
	sessionFile := os.Getenv("MADING_SESSION_FILE")
	if sessionFile == "" {
		path, err := session.DefaultPath()
		if err != nil {
			return nil, err
		}
		sessionFile = path
	}
	return &Config{
		APIBaseURL:      getEnv("MADING_API_URL", "http://localhost/mading/api"),
		SessionFile:     sessionFile,
		LogLevel:        getEnv("MADING_LOG_LEVEL", "info"),
		ArticlesPerPage: getIntEnv("MADING_ARTICLES_PER_PAGE", 6),
		UsersPerPage:    getIntEnv("MADING_USERS_PER_PAGE", 9),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}
