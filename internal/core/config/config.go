// Package config handles configuration loading and validation for profilectl.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Session   SessionConfig   `yaml:"session"`
	Endpoints EndpointsConfig `yaml:"endpoints"`
	TUI       TUIConfig       `yaml:"tui"`
	DevServer DevServerConfig `yaml:"dev_server"`
}

// ServerConfig locates the media manager whose profile settings are edited.
type ServerConfig struct {
	BaseURL     string        `yaml:"base_url"`
	Timeout     time.Duration `yaml:"timeout"`
	ProfilePath string        `yaml:"profile_path"`
}

// SessionConfig carries the authenticated session cookie. Logging in is
// done in the browser; the cookie value is copied here.
type SessionConfig struct {
	CookieName  string `yaml:"cookie_name"`
	CookieValue string `yaml:"cookie_value"`
}

// EndpointsConfig holds the paths of the four preference mutations.
type EndpointsConfig struct {
	Theme    string `yaml:"theme"`
	Timezone string `yaml:"timezone"`
	AutoSync string `yaml:"auto_sync"`
	Sync     string `yaml:"sync"`
}

// TUIConfig holds terminal UI options.
type TUIConfig struct {
	// Theme is used until the profile page has been loaded.
	Theme string `yaml:"theme"`
}

// DevServerConfig configures the bundled reference settings server.
type DevServerConfig struct {
	Addr     string        `yaml:"addr"`
	SyncLock time.Duration `yaml:"sync_lock"`
	Username string        `yaml:"username"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			BaseURL:     "http://localhost:8000",
			Timeout:     10 * time.Second,
			ProfilePath: "/profile/",
		},
		Session: SessionConfig{
			CookieName: "sessionid",
		},
		Endpoints: EndpointsConfig{
			Theme:    "/api/preferences/theme/",
			Timezone: "/api/settings/timezone/",
			AutoSync: "/api/settings/auto-sync/",
			Sync:     "/api/sync/",
		},
		TUI: TUIConfig{
			Theme: "system",
		},
		DevServer: DevServerConfig{
			Addr:     "127.0.0.1:8000",
			SyncLock: 30 * time.Second,
			Username: "plex-user",
		},
	}
}

// Load reads configuration from the given path. If configPath is empty or
// doesn't exist, returns defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = defaults.Server.BaseURL
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = defaults.Server.Timeout
	}
	if c.Server.ProfilePath == "" {
		c.Server.ProfilePath = defaults.Server.ProfilePath
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = defaults.Session.CookieName
	}
	if c.Endpoints.Theme == "" {
		c.Endpoints.Theme = defaults.Endpoints.Theme
	}
	if c.Endpoints.Timezone == "" {
		c.Endpoints.Timezone = defaults.Endpoints.Timezone
	}
	if c.Endpoints.AutoSync == "" {
		c.Endpoints.AutoSync = defaults.Endpoints.AutoSync
	}
	if c.Endpoints.Sync == "" {
		c.Endpoints.Sync = defaults.Endpoints.Sync
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
	if c.DevServer.Addr == "" {
		c.DevServer.Addr = defaults.DevServer.Addr
	}
	if c.DevServer.Username == "" {
		c.DevServer.Username = defaults.DevServer.Username
	}
}
