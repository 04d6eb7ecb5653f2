package config

import (
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig(t *testing.T) Config {
	t.Helper()
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestValidateDeep_Defaults(t *testing.T) {
	cfg := validConfig(t)
	assert.NoError(t, cfg.ValidateDeep(""))
}

func TestValidateDeep_BadBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		wantErr string
	}{
		{name: "ftp scheme", baseURL: "ftp://media.local", wantErr: "scheme must be http or https"},
		{name: "no host", baseURL: "http://", wantErr: "missing host"},
		{name: "relative", baseURL: "media.local", wantErr: "scheme must be http or https"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			cfg.Server.BaseURL = tt.baseURL

			err := cfg.ValidateDeep("")

			var fieldErrs criterio.FieldErrors
			require.ErrorAs(t, err, &fieldErrs)
			require.Len(t, fieldErrs, 1)
			assert.Equal(t, "server.base_url", fieldErrs[0].Field)
			assert.Contains(t, fieldErrs[0].Err.Error(), tt.wantErr)
		})
	}
}

func TestValidateDeep_RelativeEndpoints(t *testing.T) {
	cfg := validConfig(t)
	cfg.Endpoints.Theme = "api/preferences/theme/"
	cfg.Endpoints.Sync = "sync"

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Len(t, fieldErrs, 2)
}

func TestValidateDeep_UnknownTheme(t *testing.T) {
	cfg := validConfig(t)
	cfg.TUI.Theme = "solarized"

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "tui.theme", fieldErrs[0].Field)
}

func TestValidateDeep_ConfigPathIsDirectory(t *testing.T) {
	cfg := validConfig(t)

	err := cfg.ValidateDeep(t.TempDir())

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "config_file", fieldErrs[0].Field)
}

func TestValidate_NegativeSyncLock(t *testing.T) {
	cfg := validConfig(t)
	cfg.DevServer.SyncLock = -1

	assert.Error(t, cfg.Validate())
}
