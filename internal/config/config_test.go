package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Load default config when no config file is present", func(t *testing.T) {
		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout)
		assert.Equal(t, 60*time.Second, cfg.Server.IdleTimeout)
		assert.True(t, cfg.Server.RateLimit.Enabled)
		assert.Equal(t, float64(10), cfg.Server.RateLimit.RPS)
		assert.Equal(t, 20, cfg.Server.RateLimit.Burst)
		assert.False(t, cfg.Server.Auth.Enabled)
		assert.Equal(t, []string{"*"}, cfg.Server.CORS.AllowedOrigins)

		assert.Equal(t, StorageMemory, cfg.Storage.Driver)
		assert.True(t, cfg.Storage.Seed)
		assert.Equal(t, int32(10), cfg.Database.MaxConns)

		assert.Equal(t, "info", cfg.Logger.Level)
		assert.Equal(t, "json", cfg.Logger.Encoding)
		assert.Equal(t, "/metrics", cfg.Metrics.Path)

		assert.Equal(t, "@every 1m", cfg.Batch.CustomerStatsSchedule)
		assert.Equal(t, 30*time.Second, cfg.Batch.CustomerStatsTimeout)
		assert.Empty(t, cfg.Source)
	})

	t.Run("Environment overrides defaults", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "9191")
		t.Setenv("STORAGE_DRIVER", "POSTGRES")
		t.Setenv("DATABASE_URL", "postgres://user:password@db:5432/customers?sslmode=disable")

		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, 9191, cfg.Server.Port)
		assert.Equal(t, StoragePostgres, cfg.Storage.Driver)
		assert.Equal(t, "postgres://user:password@db:5432/customers?sslmode=disable", cfg.Database.URL)
	})

	t.Run("Read values from config file", func(t *testing.T) {
		dir := t.TempDir()
		content := []byte(`
server:
  port: 7000
  readTimeout: 3s
storage:
  driver: memory
  seed: false
logger:
  level: debug
`)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), content, 0o644))

		cfg, err := LoadConfig(dir)
		require.NoError(t, err)

		assert.Equal(t, 7000, cfg.Server.Port)
		assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
		assert.False(t, cfg.Storage.Seed)
		assert.Equal(t, "debug", cfg.Logger.Level)
		assert.Equal(t, filepath.Join(dir, "config.yml"), cfg.Source)
	})

	t.Run("Return error when config file is invalid", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte("server: [port"), 0o644))

		_, err := LoadConfig(dir)
		assert.Error(t, err)
	})

	t.Run("Reject unknown storage driver", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "mongo")

		_, err := LoadConfig(t.TempDir())
		assert.EqualError(t, err, "storage.driver must be one of: memory, postgres")
	})

	t.Run("Reject auth without secret", func(t *testing.T) {
		t.Setenv("SERVER_AUTH_ENABLED", "true")

		_, err := LoadConfig(t.TempDir())
		assert.Error(t, err)
	})

	t.Run("Read auth clients from config file", func(t *testing.T) {
		dir := t.TempDir()
		content := []byte(`
server:
  auth:
    enabled: true
    jwtSecret: signing-key
    clients:
      Ops-Team: ops-secret
`)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), content, 0o644))

		cfg, err := LoadConfig(dir)
		require.NoError(t, err)

		assert.Equal(t, map[string]string{"ops-team": "ops-secret"}, cfg.Server.Auth.Clients)
	})

	t.Run("Reject auth client without secret", func(t *testing.T) {
		dir := t.TempDir()
		content := []byte(`
server:
  auth:
    enabled: true
    jwtSecret: signing-key
    clients:
      ops: ""
`)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), content, 0o644))

		_, err := LoadConfig(dir)
		assert.EqualError(t, err, "server.auth.clients.ops has an empty secret")
	})
}
