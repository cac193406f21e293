package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath   string     `env:"DB_PATH" envDefault:"data/tangotune.db"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	SPADir   string     `env:"SPA_DIR" envDefault:"../web/dist"`

	// Sessions that see no intent for this long are torn down.
	SessionIdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"30m"`
	// How long a playback request waits for the browser's media element to
	// report loaded metadata.
	MediaReadyTimeout time.Duration `env:"MEDIA_READY_TIMEOUT" envDefault:"15s"`
	// Performers above this level are excluded from play; 0 disables the
	// ceiling.
	MaxPerformerLevel int `env:"MAX_PERFORMER_LEVEL" envDefault:"0"`

	// Bootstrap admin, created on first start when no admins exist.
	AdminEmail    string `env:"ADMIN_EMAIL" envDefault:"admin@tangotune.local"`
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:"changeme"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
