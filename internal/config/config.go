// Package config loads bot configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the whole bot configuration.
type Config struct {
	DiscordToken string   `env:"DISCORD_TOKEN"`
	Prefix       string   `env:"COMMAND_PREFIX" envDefault:"!"`
	OwnerIDs     []string `env:"OWNER_IDS" envSeparator:","`

	// SimilarityFloor is the minimum 0..100 score before a failed
	// command lookup offers a "did you mean" suggestion.
	SimilarityFloor int `env:"SIMILARITY_FLOOR" envDefault:"65"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"`
}

// New reads .env (when present) and the environment.
func New() (*Config, error) {
	// Missing .env is fine; the system environment takes over.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// RequireToken fails when no Discord token is configured; only the
// gateway binary needs one.
func (c *Config) RequireToken() error {
	if c.DiscordToken == "" {
		return fmt.Errorf("DISCORD_TOKEN is not set")
	}
	return nil
}
