// Package config loads runtime settings from the environment
package config

import (
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/questforge/questforge/internal/errors"
)

// Config is everything tunable from outside the binary
type Config struct {
	// RedisAddr is the host:port of the backing store.
	RedisAddr string `env:"QUESTFORGE_REDIS_ADDR" envDefault:"localhost:6379"`

	// RedisKeyPrefix namespaces the snapshot keys, letting several
	// installs share one Redis.
	RedisKeyPrefix string `env:"QUESTFORGE_REDIS_PREFIX" envDefault:""`

	// SweepInterval is how often the background sweeper checks for
	// missed deadlines in long-running commands.
	SweepInterval time.Duration `env:"QUESTFORGE_SWEEP_INTERVAL" envDefault:"1m"`

	// CounterDelay is how long a boss waits before counter-attacking.
	CounterDelay time.Duration `env:"QUESTFORGE_COUNTER_DELAY" envDefault:"1s"`

	// LogLevel is debug, info, warn, or error.
	LogLevel string `env:"QUESTFORGE_LOG_LEVEL" envDefault:"warn"`
}

// Load reads the configuration from the environment
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse environment")
	}
	return cfg, nil
}

// SlogLevel maps LogLevel onto a slog level, defaulting to warn
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
