package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig names the environment variables understood by the server.
// The token lifetime is given in whole minutes.
type envConfig struct {
	EndpointAddrHTTP string `env:"ADDRESS"`
	StoreDriver      string `env:"STORE_DRIVER"`
	DatabaseDSN      string `env:"POSTGRES_URL"`
	CacheDriver      string `env:"CACHE_DRIVER"`
	RedisURL         string `env:"REDIS_URL"`
	SecretKey        string `env:"SECRET_KEY"`
	Algorithm        string `env:"ALGORITHM"`
	TokenMinutes     *int   `env:"JWT_EXPIRATION_MINUTES"`
	CacheTTL         bool   `env:"TOKEN_CACHE_TTL"`
	PasswordScheme   string `env:"PASSWORD_SCHEME"`
	LogLevel         string `env:"LOG_LEVEL"`
}

// parseEnv overlays environment variables onto config. Unset variables keep
// the current value because envConfig is pre-filled from config.
func parseEnv(config *Config) {
	e := envConfig{
		EndpointAddrHTTP: config.EndpointAddrHTTP,
		StoreDriver:      config.StoreDriver,
		DatabaseDSN:      config.DatabaseDSN,
		CacheDriver:      config.CacheDriver,
		RedisURL:         config.RedisURL,
		SecretKey:        config.SecretKey,
		Algorithm:        config.Algorithm,
		CacheTTL:         config.CacheTTL,
		PasswordScheme:   config.PasswordScheme,
		LogLevel:         config.LogLevel,
	}

	if err := env.Parse(&e); err != nil {
		panic(fmt.Errorf("parse env: %w", err))
	}

	config.EndpointAddrHTTP = e.EndpointAddrHTTP
	config.StoreDriver = e.StoreDriver
	config.DatabaseDSN = e.DatabaseDSN
	config.CacheDriver = e.CacheDriver
	config.RedisURL = e.RedisURL
	config.SecretKey = e.SecretKey
	config.Algorithm = e.Algorithm
	// unset keeps whatever finer duration an earlier layer produced
	if e.TokenMinutes != nil {
		config.TokenValidityDuration = time.Duration(*e.TokenMinutes) * time.Minute
	}
	config.CacheTTL = e.CacheTTL
	config.PasswordScheme = e.PasswordScheme
	config.LogLevel = e.LogLevel
}
