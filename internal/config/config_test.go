package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pagesage/core/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "env: production\n")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Port)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, "cl100k_base", cfg.Content.Encoding)
	assert.Equal(t, 4096, cfg.Content.MaxTokens)
	assert.Equal(t, time.Hour, cfg.Content.Retention)
	assert.Equal(t, 10*time.Minute, cfg.Content.SweepInterval)
	assert.Equal(t, "openai-compatible", cfg.AI.Type)
	assert.InDelta(t, 0.25, cfg.AI.Temperature, 1e-9)
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
port: 9090
database:
  host: db.internal
  name: snippets
redis:
  url: redis://cache:6379/2
ai:
  type: anthropic
  api_key: sk-test
  model: claude-haiku-4-5-20251001
  timeout: 30s
content:
  max_tokens: 2048
  retention: 2h
  sweep_interval: 5m
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Contains(t, cfg.Database.DSNValue(), "db.internal:3306")
	assert.Contains(t, cfg.Database.DSNValue(), "/snippets?")
	assert.Equal(t, "redis://cache:6379/2", cfg.Redis.URLValue())
	assert.Equal(t, "anthropic", cfg.AI.Type)
	assert.Equal(t, 30*time.Second, cfg.AI.Timeout)
	assert.Equal(t, 2048, cfg.Content.MaxTokens)
	assert.Equal(t, 2*time.Hour, cfg.Content.Retention)
	assert.Equal(t, 5*time.Minute, cfg.Content.SweepInterval)
}

func TestLoadRejectsInvalidPort(t *testing.T) {
	path := writeConfig(t, "port: 99999\n")
	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	path := writeConfig(t, "content:\n  retention: soon\n")
	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, "no_such_key: true\n")
	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, err)
}

func TestRedisURLFromFields(t *testing.T) {
	cfg := config.RedisConfig{Host: "localhost", Port: 6379, DB: 1, Password: "pw"}
	assert.Equal(t, "redis://:pw@localhost:6379/1", cfg.URLValue())
}
