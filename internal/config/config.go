// Package config loads the HTTP host's settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the HTTP host settings.
type Config struct {
	Addr                 string
	ShutdownTimeout      time.Duration
	SessionIdleTimeout   time.Duration
	SessionSweepInterval time.Duration
	ExportLogs           bool
}

// Default returns the settings used when no variable is set.
func Default() Config {
	return Config{
		Addr:                 ":8080",
		ShutdownTimeout:      5 * time.Second,
		SessionIdleTimeout:   30 * time.Minute,
		SessionSweepInterval: time.Minute,
	}
}

// LoadDotEnv loads environment variables from path (".env" when empty) when
// the file exists. Existing process environment variables are not overridden.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}

	err := godotenv.Load(path)
	if err == nil {
		return nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("load %s: %w", path, err)
}

// Load reads the settings from the process environment on top of Default.
func Load() (Config, error) {
	cfg := Default()

	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.Addr = v
	}

	var err error
	if cfg.ShutdownTimeout, err = duration("SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout); err != nil {
		return Config{}, err
	}
	if cfg.SessionIdleTimeout, err = duration("SESSION_IDLE_TIMEOUT", cfg.SessionIdleTimeout); err != nil {
		return Config{}, err
	}
	if cfg.SessionSweepInterval, err = duration("SESSION_SWEEP_INTERVAL", cfg.SessionSweepInterval); err != nil {
		return Config{}, err
	}

	if v := os.Getenv("OTEL_LOGS_ENABLED"); v != "" {
		cfg.ExportLogs, err = strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse OTEL_LOGS_ENABLED: %w", err)
		}
	}

	return cfg, nil
}

func duration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("parse %s: negative duration %s", key, v)
	}
	return d, nil
}
