package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_OverridesOnlySetVariables(t *testing.T) {
	t.Setenv("SECRET_KEY", "env-secret")
	t.Setenv("JWT_EXPIRATION_MINUTES", "10")
	t.Setenv("REDIS_URL", "redis://other:6379/2")
	t.Setenv("TOKEN_CACHE_TTL", "false")

	c := &Config{}
	c.LoadDefaults()
	parseEnv(c)

	assert.Equal(t, "env-secret", c.SecretKey)
	assert.Equal(t, 10*time.Minute, c.TokenValidityDuration)
	assert.Equal(t, "redis://other:6379/2", c.RedisURL)
	assert.False(t, c.CacheTTL)

	assert.Equal(t, "HS256", c.Algorithm, "unset variable keeps default")
	assert.Equal(t, ":8000", c.EndpointAddrHTTP)
}

func TestParseEnv_BadNumberPanics(t *testing.T) {
	t.Setenv("JWT_EXPIRATION_MINUTES", "a lot")

	c := &Config{}
	c.LoadDefaults()
	require.Panics(t, func() { parseEnv(c) })
}
