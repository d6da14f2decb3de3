package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"examgateway/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const validYAML = `
backends:
  - id: b1
    address: http://b1:9000
    capacity: 2
  - id: b2
    address: http://b2:9000
    capacity: 4
health:
  poll_interval_ms: 1000
  poll_timeout_ms: 500
  failure_threshold: 3
sessions:
  idle_window_ms: 600000
  sweep_interval_ms: 30000
forward:
  timeout_ms: 2500
`

func TestLoadConfig_Success(t *testing.T) {
	t.Setenv(envHTTPPort, "8080")
	t.Setenv(envConfigPath, writeConfigFile(t, validYAML))
	t.Setenv(envRedisAddr, "redis://localhost:6379")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisAddr)
	require.Len(t, cfg.Backends, 2)
	assert.Equal(t, domain.Backend{ID: "b1", Address: "http://b1:9000", Capacity: 2}, cfg.Backends[0])
	assert.Equal(t, time.Second, cfg.PollInterval)
	assert.Equal(t, 500*time.Millisecond, cfg.PollTimeout)
	assert.Equal(t, 3, cfg.FailureThreshold)
	assert.Equal(t, 10*time.Minute, cfg.IdleWindow)
	assert.Equal(t, 30*time.Second, cfg.SweepInterval)
	assert.Equal(t, 2500*time.Millisecond, cfg.ForwardTimeout)
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv(envHTTPPort, "8080")
	t.Setenv(envConfigPath, writeConfigFile(t, "backends: []\n"))
	t.Setenv(envRedisAddr, "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Empty(t, cfg.Backends)
	assert.Equal(t, "", cfg.RedisAddr)
	assert.Equal(t, 5*time.Second, cfg.PollInterval)
	assert.Equal(t, 2*time.Second, cfg.PollTimeout)
	assert.Equal(t, 2, cfg.FailureThreshold)
	assert.Equal(t, 30*time.Minute, cfg.IdleWindow)
	assert.Equal(t, time.Minute, cfg.SweepInterval)
	assert.Equal(t, 5*time.Second, cfg.ForwardTimeout)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("missing_port", func(t *testing.T) {
		t.Setenv(envHTTPPort, "")
		t.Setenv(envConfigPath, writeConfigFile(t, validYAML))

		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), envHTTPPort)
	})
	t.Run("port_out_of_range", func(t *testing.T) {
		t.Setenv(envHTTPPort, "70000")
		t.Setenv(envConfigPath, writeConfigFile(t, validYAML))

		_, err := LoadConfig()
		require.Error(t, err)
	})
	t.Run("missing_config_path", func(t *testing.T) {
		t.Setenv(envHTTPPort, "8080")
		t.Setenv(envConfigPath, "")

		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), envConfigPath)
	})
	t.Run("config_file_not_found", func(t *testing.T) {
		t.Setenv(envHTTPPort, "8080")
		t.Setenv(envConfigPath, filepath.Join(t.TempDir(), "nope.yaml"))

		_, err := LoadConfig()
		require.Error(t, err)
	})
	t.Run("malformed_yaml", func(t *testing.T) {
		t.Setenv(envHTTPPort, "8080")
		t.Setenv(envConfigPath, writeConfigFile(t, "backends: [whoops"))

		_, err := LoadConfig()
		require.Error(t, err)
	})
	t.Run("invalid_backend_entry", func(t *testing.T) {
		t.Setenv(envHTTPPort, "8080")
		t.Setenv(envConfigPath, writeConfigFile(t, `
backends:
  - id: b1
    address: b1:9000
    capacity: 2
`))

		_, err := LoadConfig()
		require.Error(t, err)
	})
	t.Run("duplicate_backend_id", func(t *testing.T) {
		t.Setenv(envHTTPPort, "8080")
		t.Setenv(envConfigPath, writeConfigFile(t, `
backends:
  - id: b1
    address: http://b1:9000
    capacity: 2
  - id: b1
    address: http://b1:9001
    capacity: 2
`))

		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "listed twice")
	})
	t.Run("negative_tunable", func(t *testing.T) {
		t.Setenv(envHTTPPort, "8080")
		t.Setenv(envConfigPath, writeConfigFile(t, `
backends: []
health:
  poll_interval_ms: -5
`))

		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "poll_interval_ms")
	})
}
