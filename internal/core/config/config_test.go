package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_missing_file_returns_defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig(), *cfg)
}

func TestLoad_empty_path_returns_defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "/api/settings/timezone/", cfg.Endpoints.Timezone)
	assert.Equal(t, 10*time.Second, cfg.Server.Timeout)
}

func TestLoad_overrides_and_fills_defaults(t *testing.T) {
	path := writeConfig(t, `
server:
  base_url: https://media.example.com
  timeout: 3s
session:
  cookie_value: abc123
endpoints:
  sync: /api/v2/sync/
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://media.example.com", cfg.Server.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Server.Timeout)
	assert.Equal(t, "/profile/", cfg.Server.ProfilePath)
	assert.Equal(t, "sessionid", cfg.Session.CookieName)
	assert.Equal(t, "abc123", cfg.Session.CookieValue)
	assert.Equal(t, "/api/v2/sync/", cfg.Endpoints.Sync)
	assert.Equal(t, "/api/preferences/theme/", cfg.Endpoints.Theme)
}

func TestLoad_invalid_yaml(t *testing.T) {
	path := writeConfig(t, "server: [unterminated")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestLoad_negative_timeout_is_invalid(t *testing.T) {
	path := writeConfig(t, "server:\n  timeout: -1s\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.timeout")
}
