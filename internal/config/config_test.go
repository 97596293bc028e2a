package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "localhost:6379", cfg.RedisURL)
	assert.Equal(t, "./data", cfg.DataDir)

	timing := cfg.Timing()
	assert.Equal(t, 6*time.Second, timing.Interval)
	assert.Equal(t, 120*time.Second, timing.BaseTime)
	assert.Equal(t, 12*time.Second, timing.CommitBonus)
	assert.Equal(t, 24*time.Second, timing.LowTime)
	assert.Equal(t, 40, timing.ArenaSize)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("LOG_LEVEL", "WARNING")
	t.Setenv("REDIS_URL", "redis://cache:6379/2")
	t.Setenv("COMBAT_TICK_INTERVAL", "2s")
	t.Setenv("COMBAT_BASE_TIME", "1m")
	t.Setenv("COMBAT_ARENA_SIZE", "100")
	t.Setenv("WORKER_ID", "combatd-1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
	assert.Equal(t, "redis://cache:6379/2", cfg.RedisURL)
	assert.Equal(t, "combatd-1", cfg.WorkerID)
	assert.Equal(t, 2*time.Second, cfg.Timing().Interval)
	assert.Equal(t, time.Minute, cfg.Timing().BaseTime)
	assert.Equal(t, 100, cfg.Timing().ArenaSize)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "malformed duration", key: "COMBAT_BASE_TIME", value: "soon"},
		{name: "zero interval", key: "COMBAT_TICK_INTERVAL", value: "0s"},
		{name: "negative arena", key: "COMBAT_ARENA_SIZE", value: "-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLogLevel(in), in)
	}
}
