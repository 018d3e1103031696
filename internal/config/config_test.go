package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8050", cfg.Addr())
	assert.Equal(t, ".", cfg.DataDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, 50.0, cfg.RateLimit.RPS)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `host: 127.0.0.1
port: 9000
data_dir: /srv/data
log_level: debug
redis:
  addr: localhost:6379
  ttl: 30s
rate_limit:
  rps: 10
  burst: 20
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Addr())
	assert.Equal(t, "/srv/data", cfg.DataDir)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 30*time.Second, cfg.Redis.TTL)
	assert.Equal(t, 10.0, cfg.RateLimit.RPS)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 9000\n"), 0644))

	t.Setenv("CARBONDASH_PORT", "7070")
	t.Setenv("CARBONDASH_REDIS_ADDR", "redis:6379")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
}

func TestLoad_InvalidEnvPort(t *testing.T) {
	t.Setenv("CARBONDASH_PORT", "not-a-port")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CARBONDASH_PORT")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Port = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.LogLevel = "loud"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.RateLimit.Burst = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.RateLimit.RPS = 0 // disabled: burst irrelevant
	cfg.RateLimit.Burst = 0
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
