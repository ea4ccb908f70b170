package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Settings holds every tunable the service reads from the environment.
// cmd/api loads a .env file first (when present) and then parses these.
type Settings struct {
	HTTPAddr    string `envconfig:"HTTP_ADDR" default:":8080"`
	DatabaseURL string `envconfig:"DB_URL" required:"true"`

	// RedisURL is optional. When empty the cache and the background queue
	// are disabled and live friend-request notifications are not delivered.
	RedisURL string `envconfig:"REDIS_URL"`

	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`

	// RegistryBackend selects the active-session registry implementation:
	// "memory" (default) or "postgres".
	RegistryBackend string `envconfig:"REGISTRY_BACKEND" default:"memory"`

	AsynqConcurrency int    `envconfig:"ASYNQ_CONCURRENCY" default:"10"`
	LogLevel         string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load parses Settings from the process environment.
func Load() (Settings, error) {
	var s Settings
	if err := envconfig.Process("", &s); err != nil {
		return Settings{}, fmt.Errorf("config: %w", err)
	}
	if s.RegistryBackend != "memory" && s.RegistryBackend != "postgres" {
		return Settings{}, fmt.Errorf("config: unknown REGISTRY_BACKEND %q", s.RegistryBackend)
	}
	return s, nil
}
