package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "env: production\n")
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Port)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, 3600, cfg.CacheTTL)
	assert.Equal(t, "root:password@tcp(127.0.0.1:3306)/naturals?charset=utf8mb4&parseTime=True&loc=Local", cfg.DSNValue())
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURLValue())
}

func TestLoad_FullConfig(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
port: 8080
env: development
jwt_secret: super-secret
cache_ttl_seconds: 120
allowed_origins:
  - https://naturals.example
database:
  host: db.internal
  port: 3307
  user: naturals
  password: pw
  name: naturals_prod
  charset: utf8mb4
redis:
  host: cache.internal
  port: 6380
  password: rpw
  db: 2
identity:
  base_url: https://id.example
  api_key: key-123
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, "super-secret", cfg.JWTSecret)
	assert.Equal(t, 120, cfg.CacheTTL)
	assert.Equal(t, []string{"https://naturals.example"}, cfg.AllowedOrigins)
	assert.Equal(t, "naturals:pw@tcp(db.internal:3307)/naturals_prod?charset=utf8mb4&parseTime=True&loc=Local", cfg.DSNValue())
	assert.Equal(t, "redis://:rpw@cache.internal:6380/2", cfg.RedisURLValue())
	assert.Equal(t, "https://id.example", cfg.Identity.BaseURL)
}

func TestLoad_ExplicitDSNAndRedisURLWin(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
dsn: user:pw@tcp(h:3306)/db
redis_url: redis://custom:6379/1
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "user:pw@tcp(h:3306)/db", cfg.DSNValue())
	assert.Equal(t, "redis://custom:6379/1", cfg.RedisURLValue())
}

func TestLoad_UnknownFieldRejected(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "prot: 8080\n")
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"port too large", "port: 70000\n"},
		{"port zero", "port: 0\n"},
		{"bad db port", "database:\n  port: -1\n"},
		{"zero ttl", "cache_ttl_seconds: 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
}
