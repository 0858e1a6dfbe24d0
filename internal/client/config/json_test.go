package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	dir := t.TempDir()

	t.Run("loads all fields", func(t *testing.T) {
		path := writeTempJSON(t, dir, "full.json", map[string]any{
			"server_url":      "http://www.example:9000",
			"request_timeout": 2_000_000_000,
		})

		cfg := &Config{}
		require.NoError(t, parseJson(cfg, path))

		assert.Equal(t, "http://www.example:9000", cfg.ServerURL)
		assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
	})

	t.Run("absent fields keep current values", func(t *testing.T) {
		path := writeTempJSON(t, dir, "partial.json", map[string]any{
			"server_url": "http://partial",
		})

		cfg := &Config{RequestTimeout: 42 * time.Second}
		require.NoError(t, parseJson(cfg, path))

		assert.Equal(t, "http://partial", cfg.ServerURL)
		assert.Equal(t, 42*time.Second, cfg.RequestTimeout)
	})

	t.Run("empty path → no changes", func(t *testing.T) {
		cfg := &Config{ServerURL: "defaults"}
		require.NoError(t, parseJson(cfg, ""))
		assert.Equal(t, "defaults", cfg.ServerURL)
	})

	t.Run("missing file", func(t *testing.T) {
		assert.Error(t, parseJson(&Config{}, filepath.Join(dir, "nope.json")))
	})

	t.Run("invalid JSON", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		assert.Error(t, parseJson(&Config{}, bad))
	})
}
