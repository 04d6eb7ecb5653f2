package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/profilectl/internal/core/styles"
)

// Validate performs structural validation of the configuration.
func (c *Config) Validate() error {
	if c.Server.BaseURL == "" {
		return errors.New("server.base_url cannot be empty")
	}
	if c.Server.Timeout <= 0 {
		return errors.New("server.timeout must be positive")
	}
	if c.DevServer.SyncLock < 0 {
		return errors.New("dev_server.sync_lock cannot be negative")
	}
	return nil
}

// ValidateDeep performs comprehensive validation including URL syntax,
// endpoint paths and config file accessibility. The configPath argument
// specifies the config file location to validate (empty string skips the
// config file check).
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("server.base_url", c.Server.BaseURL, isHTTPURL),
		c.validatePaths(),
		criterio.Run("tui.theme", c.TUI.Theme, isTheme),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

func (c *Config) validatePaths() error {
	var errs criterio.FieldErrorsBuilder
	for field, path := range map[string]string{
		"server.profile_path": c.Server.ProfilePath,
		"endpoints.theme":     c.Endpoints.Theme,
		"endpoints.timezone":  c.Endpoints.Timezone,
		"endpoints.auto_sync": c.Endpoints.AutoSync,
		"endpoints.sync":      c.Endpoints.Sync,
	} {
		if err := isAbsolutePath(path); err != nil {
			errs = errs.Append(field, err)
		}
	}
	return errs.ToError()
}

func isHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("missing host")
	}
	return nil
}

func isAbsolutePath(path string) error {
	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("path %q must start with /", path)
	}
	return nil
}

func isTheme(name string) error {
	if !styles.IsTheme(name) {
		return fmt.Errorf("unknown theme %q (valid: %s)", name, strings.Join(styles.ThemeNames(), ", "))
	}
	return nil
}
