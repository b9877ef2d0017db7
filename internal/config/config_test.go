package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0", Port: 8080,
			ReadTimeout: 10 * time.Second, WriteTimeout: 30 * time.Second,
			IdleTimeout: time.Minute, ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			DSN: "postgres://localhost:5432/catalog", MaxConns: 25, MinConns: 5,
		},
		Auth: AuthConfig{
			JWTSecret: "0123456789abcdef0123456789abcdef",
			JWTIssuer: "textbook-catalog",
		},
		Catalog: CatalogConfig{TransferWindowDays: 30},
		Cache:   CacheConfig{Size: 1024, TTL: 2 * time.Minute},
		Policy:  PolicyConfig{Path: "./policy.yaml"},
		Log:     LogConfig{Level: "info", Format: "json"},
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, validConfig().Validate())
	})

	t.Run("short jwt secret", func(t *testing.T) {
		cfg := validConfig()
		cfg.Auth.JWTSecret = "short"
		assert.ErrorContains(t, cfg.Validate(), "jwt_secret")
	})

	t.Run("min conns above max", func(t *testing.T) {
		cfg := validConfig()
		cfg.Database.MinConns = 50
		assert.ErrorContains(t, cfg.Validate(), "min_conns")
	})

	t.Run("bad log level", func(t *testing.T) {
		cfg := validConfig()
		cfg.Log.Level = "verbose"
		assert.ErrorContains(t, cfg.Validate(), "log.level")
	})

	t.Run("zero cache ttl", func(t *testing.T) {
		cfg := validConfig()
		cfg.Cache.TTL = 0
		assert.ErrorContains(t, cfg.Validate(), "cache.ttl")
	})
}

func TestLoad(t *testing.T) {
	t.Run("from yaml file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		content := []byte(`
database:
  dsn: postgres://localhost:5432/catalog
auth:
  jwt_secret: 0123456789abcdef0123456789abcdef
cache:
  ttl: 90s
`)
		require.NoError(t, os.WriteFile(path, content, 0o600))
		t.Setenv("CONFIG_PATH", path)

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, 90*time.Second, cfg.Cache.TTL)
		assert.Equal(t, 30, cfg.Catalog.TransferWindowDays)
	})

	t.Run("env overrides yaml", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		content := []byte(`
database:
  dsn: postgres://localhost:5432/catalog
auth:
  jwt_secret: 0123456789abcdef0123456789abcdef
server:
  port: 9000
`)
		require.NoError(t, os.WriteFile(path, content, 0o600))
		t.Setenv("CONFIG_PATH", path)
		t.Setenv("SERVER_PORT", "9100")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 9100, cfg.Server.Port)
	})

	t.Run("missing explicit file", func(t *testing.T) {
		t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

		_, err := Load()
		assert.Error(t, err)
	})
}
