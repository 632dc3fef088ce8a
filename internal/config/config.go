// Package config loads service configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every runtime knob for the API server.
type Config struct {
	Addr        string `env:"COACHBASE_ADDR" envDefault:":8080"`
	DatabaseDSN string `env:"COACHBASE_PG_DSN"`

	AuthSecret string        `env:"COACHBASE_AUTH_SECRET"`
	AuthIssuer string        `env:"COACHBASE_AUTH_ISSUER" envDefault:"coachbase"`
	SessionTTL time.Duration `env:"COACHBASE_SESSION_TTL" envDefault:"720h"`

	RedisAddr     string `env:"COACHBASE_REDIS_ADDR"`
	RedisPassword string `env:"COACHBASE_REDIS_PASSWORD"`

	RateBurst     int   `env:"COACHBASE_RATE_BURST" envDefault:"50"`
	RatePerSecond int   `env:"COACHBASE_RATE_PER_SEC" envDefault:"25"`
	MaxBodyBytes  int64 `env:"COACHBASE_MAX_BODY_BYTES" envDefault:"1048576"`
}

// Load reads .env (when present) and parses the environment. The auth secret
// is required: without it no token can be issued or verified.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.AuthSecret == "" {
		return Config{}, errors.New("COACHBASE_AUTH_SECRET is required")
	}
	if cfg.SessionTTL <= 0 {
		return Config{}, errors.New("COACHBASE_SESSION_TTL must be positive")
	}
	return cfg, nil
}
