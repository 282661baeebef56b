package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds runtime settings for the API server, read from environment
// variables. An empty DatabaseDSN selects the in-memory backend with demo
// seed data.
type Config struct {
	Addr        string        `env:"ADDR,         default=:8080"`
	JWTSecret   string        `env:"JWT_SECRET,   default=dev-secret-change-me"`
	TokenTTL    time.Duration `env:"TOKEN_TTL,    default=24h"`
	DatabaseDSN string        `env:"DATABASE_DSN"`
	LogLevel    string        `env:"LOG_LEVEL,    default=info"`
}

// Load reads the configuration from the environment.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
