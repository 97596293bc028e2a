package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/jwebster45206/combat-engine/pkg/combat"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevelRaw string `env:"LOG_LEVEL" envDefault:"info"`
	LogLevel    slog.Level
	RedisURL    string `env:"REDIS_URL" envDefault:"localhost:6379"`
	DataDir     string `env:"DATA_DIR" envDefault:"./data"`
	WorkerID    string `env:"WORKER_ID"`

	TickInterval   time.Duration `env:"COMBAT_TICK_INTERVAL" envDefault:"6s"`
	BaseTime       time.Duration `env:"COMBAT_BASE_TIME" envDefault:"120s"`
	CommitBonus    time.Duration `env:"COMBAT_COMMIT_BONUS" envDefault:"12s"`
	LowTimeWarning time.Duration `env:"COMBAT_LOW_TIME_WARNING" envDefault:"24s"`
	ArenaSize      int           `env:"COMBAT_ARENA_SIZE" envDefault:"40"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.TickInterval <= 0 {
		return nil, fmt.Errorf("COMBAT_TICK_INTERVAL must be positive, got %s", cfg.TickInterval)
	}
	if cfg.ArenaSize < 0 {
		return nil, fmt.Errorf("COMBAT_ARENA_SIZE must not be negative, got %d", cfg.ArenaSize)
	}
	cfg.LogLevel = parseLogLevel(cfg.LogLevelRaw)
	return &cfg, nil
}

// Timing returns the commit clock settings for new combat sessions.
func (c *Config) Timing() combat.Timing {
	return combat.Timing{
		Interval:    c.TickInterval,
		BaseTime:    c.BaseTime,
		CommitBonus: c.CommitBonus,
		LowTime:     c.LowTimeWarning,
		ArenaSize:   c.ArenaSize,
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
