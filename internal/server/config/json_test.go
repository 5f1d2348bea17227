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

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJSON(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"env":                "dev",
		"port":               9090,
		"route_prefix":       "/api/users",
		"storage_driver":     "memory",
		"database_dsn":       "postgres://file",
		"jwt_secret":         "a",
		"jwt_refresh_secret": "b",
		"access_token_ttl":   "10m",
		"refresh_token_ttl":  "24h",
		"bcrypt_cost":        11,
		"shutdown_timeout":   "5s",
	})

	t.Run("loads from json", func(t *testing.T) {
		cfg := defaults()
		require.NoError(t, parseJSON(cfg, []string{"-config", path}))

		assert.Equal(t, "dev", cfg.Env)
		assert.Equal(t, 9090, cfg.Port)
		assert.Equal(t, "/api/users", cfg.RoutePrefix)
		assert.Equal(t, StorageMemory, cfg.StorageDriver)
		assert.Equal(t, "postgres://file", cfg.DatabaseDSN)
		assert.Equal(t, "a", cfg.AccessSecret)
		assert.Equal(t, "b", cfg.RefreshSecret)
		assert.Equal(t, 10*time.Minute, cfg.AccessTokenTTL)
		assert.Equal(t, 24*time.Hour, cfg.RefreshTokenTTL)
		assert.Equal(t, 11, cfg.BcryptCost)
		assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	})

	t.Run("no config flag → no changes", func(t *testing.T) {
		cfg := defaults()
		require.NoError(t, parseJSON(cfg, []string{"-p", "1"}))
		assert.Equal(t, defaults(), cfg)
	})

	t.Run("partial file keeps other values", func(t *testing.T) {
		partial := writeTempJSON(t, map[string]any{"port": 7000})
		cfg := defaults()
		require.NoError(t, parseJSON(cfg, []string{"-c", partial}))
		assert.Equal(t, 7000, cfg.Port)
		assert.Equal(t, time.Hour, cfg.AccessTokenTTL)
	})

	t.Run("invalid JSON → error", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		require.Error(t, parseJSON(defaults(), []string{"-c", bad}))
	})

	t.Run("missing file → error", func(t *testing.T) {
		require.Error(t, parseJSON(defaults(), []string{"-c", filepath.Join(t.TempDir(), "nope.json")}))
	})
}
