package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth AuthConfig
}

// AuthConfig groups the credential and session subsystem settings.
type AuthConfig struct {
	// DataDir holds the two persisted documents (users.json, sessions.json).
	DataDir string `env:"AUTH_DATA_DIR, default=./data"`

	// SessionTTL is the lifetime of a session from login. 720h = 30 days.
	SessionTTL time.Duration `env:"AUTH_SESSION_TTL, default=720h"`

	// DefaultAdminPassword seeds the first admin account when no user
	// document exists yet. Rotate it before the service is reachable.
	DefaultAdminPassword string `env:"AUTH_DEFAULT_ADMIN_PASSWORD, default=changeme"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return &cfg, nil
}
