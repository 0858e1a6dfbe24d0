package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type envConfig struct {
	ServerURL      string        `env:"AUTHKEEPER_URL"`
	RequestTimeout time.Duration `env:"AUTHKEEPER_TIMEOUT"`
}

// parseEnv overlays AUTHKEEPER_URL and AUTHKEEPER_TIMEOUT (a Go duration
// such as "5s") onto cfg.
func parseEnv(cfg *Config) error {
	e := envConfig{
		ServerURL:      cfg.ServerURL,
		RequestTimeout: cfg.RequestTimeout,
	}

	if err := env.Parse(&e); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	cfg.ServerURL = e.ServerURL
	cfg.RequestTimeout = e.RequestTimeout
	return nil
}
