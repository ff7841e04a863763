package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/questforge/questforge/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Empty(t, cfg.RedisKeyPrefix)
	assert.Equal(t, time.Minute, cfg.SweepInterval)
	assert.Equal(t, time.Second, cfg.CounterDelay)
	assert.Equal(t, slog.LevelWarn, cfg.SlogLevel())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("QUESTFORGE_REDIS_ADDR", "redis.internal:6380")
	t.Setenv("QUESTFORGE_REDIS_PREFIX", "qa")
	t.Setenv("QUESTFORGE_SWEEP_INTERVAL", "30s")
	t.Setenv("QUESTFORGE_COUNTER_DELAY", "250ms")
	t.Setenv("QUESTFORGE_LOG_LEVEL", "debug")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "redis.internal:6380", cfg.RedisAddr)
	assert.Equal(t, "qa", cfg.RedisKeyPrefix)
	assert.Equal(t, 30*time.Second, cfg.SweepInterval)
	assert.Equal(t, 250*time.Millisecond, cfg.CounterDelay)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoadRejectsGarbage(t *testing.T) {
	t.Setenv("QUESTFORGE_SWEEP_INTERVAL", "not-a-duration")

	_, err := config.Load()
	require.Error(t, err)
}
