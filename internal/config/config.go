package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/abhisek/freedomquest/internal/store"
)

// Config holds the runtime configuration, read from the environment.
type Config struct {
	// DBPath is the SQLite file holding saved progress.
	DBPath string `env:"FREEDOMQUEST_DB"`

	// LogPath is the log file. Defaults to freedomquest.log next to DBPath.
	LogPath string `env:"FREEDOMQUEST_LOG"`

	LogLevel string `env:"FREEDOMQUEST_LOG_LEVEL" envDefault:"info"`

	// FeedbackDelay is how long decision and wrong-answer feedback stays
	// on screen before the game moves on. Must be positive.
	FeedbackDelay time.Duration `env:"FREEDOMQUEST_FEEDBACK_DELAY" envDefault:"2s"`

	// Bell enables the terminal bell used for sound cues. The in-game
	// sound setting still applies on top of it.
	Bell bool `env:"FREEDOMQUEST_BELL" envDefault:"true"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.FeedbackDelay <= 0 {
		return Config{}, fmt.Errorf("FREEDOMQUEST_FEEDBACK_DELAY must be positive, got %s", cfg.FeedbackDelay)
	}
	return cfg, nil
}

// ResolvePaths fills in DBPath and LogPath. dbOverride (the --db flag)
// wins over the environment, which wins over the XDG default.
func (c *Config) ResolvePaths(dbOverride string) error {
	switch {
	case dbOverride != "":
		c.DBPath = dbOverride
	case c.DBPath != "":
	default:
		p, err := store.DefaultDBPath()
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		c.DBPath = p
	}
	if err := store.EnsureDir(c.DBPath); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	if c.LogPath == "" {
		c.LogPath = filepath.Join(filepath.Dir(c.DBPath), "freedomquest.log")
	}
	return nil
}
