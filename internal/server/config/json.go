package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/authkeeper/internal/flagx"
	"github.com/dmitrijs2005/authkeeper/internal/timex"
)

// JsonConfig mirrors Config for JSON files. Pointer fields distinguish
// "absent" from zero values so a partial file only overrides what it names.
type JsonConfig struct {
	EndpointAddrHTTP      *string         `json:"endpoint_addr_http"`
	StoreDriver           *string         `json:"store_driver"`
	DatabaseDSN           *string         `json:"database_dsn"`
	CacheDriver           *string         `json:"cache_driver"`
	RedisURL              *string         `json:"redis_url"`
	SecretKey             *string         `json:"secret_key"`
	Algorithm             *string         `json:"algorithm"`
	TokenValidityDuration *timex.Duration `json:"token_validity_duration"`
	CacheTTL              *bool           `json:"cache_ttl"`
	PasswordScheme        *string         `json:"password_scheme"`
	LogLevel              *string         `json:"log_level"`
}

// parseJson loads the file named by -c/-config (or CONFIG) into config.
// No path means nothing to do. An unreadable file or invalid JSON panics,
// the same way bad flags do.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigPath(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.StoreDriver, c.StoreDriver)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.CacheDriver, c.CacheDriver)
	setString(&config.RedisURL, c.RedisURL)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.Algorithm, c.Algorithm)
	setString(&config.PasswordScheme, c.PasswordScheme)
	setString(&config.LogLevel, c.LogLevel)
	if c.TokenValidityDuration != nil {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.CacheTTL != nil {
		config.CacheTTL = *c.CacheTTL
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
