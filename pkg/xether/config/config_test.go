package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "http://localhost:8000", cfg.BackendURL)
	assert.Empty(t, cfg.AccessToken)
	assert.Empty(t, cfg.RefreshToken)
	assert.Equal(t, 30.0, cfg.RequestTimeout)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, "table", cfg.Settings.OutputFormat)
	assert.Equal(t, TokenStorageFile, cfg.TokenStorageOrDefault())
	require.NoError(t, cfg.Validate())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".xether", "config.json")

	cfg := DefaultConfig()
	cfg.BackendURL = "https://save-test.xether.ai"
	cfg.AccessToken = "save-token"
	cfg.RefreshToken = "refresh-token"
	cfg.RequestTimeout = 45
	cfg.MaxRetries = 2
	cfg.Settings.OutputFormat = "json"
	cfg.Settings.PageSize = 10
	cfg.Settings.TokenStorage = TokenStorageKeychain

	require.NoError(t, Save(path, &cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, *loaded)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestSaveWritesSnakeCaseJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := DefaultConfig()
	cfg.AccessToken = "abc"
	require.NoError(t, Save(path, &cfg))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(content, &raw))
	assert.Equal(t, "http://localhost:8000", raw["backend_url"])
	assert.Equal(t, "abc", raw["access_token"])
	assert.NotContains(t, raw, "refresh_token")
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), *cfg)
}

func TestLoadInvalidJSONFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("invalid json content"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), *cfg)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"backend_url":"https://test.xether.ai","access_token":"test-token"}`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://test.xether.ai", cfg.BackendURL)
	assert.Equal(t, "test-token", cfg.AccessToken)
	assert.Equal(t, 30.0, cfg.RequestTimeout)
	assert.Equal(t, 3, cfg.MaxRetries)
}

func TestLoadRequiresPath(t *testing.T) {
	_, err := Load("")
	require.Error(t, err)
}

func TestSaveNil(t *testing.T) {
	err := Save(filepath.Join(t.TempDir(), "config.json"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config is nil")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "https url", mutate: func(c *Config) { c.BackendURL = "https://api.xether.ai" }},
		{name: "invalid url", mutate: func(c *Config) { c.BackendURL = "invalid-url" }, wantErr: "backend_url must start with http:// or https://"},
		{name: "negative timeout", mutate: func(c *Config) { c.RequestTimeout = -1 }, wantErr: "request_timeout must be positive"},
		{name: "zero timeout", mutate: func(c *Config) { c.RequestTimeout = 0 }, wantErr: "request_timeout must be positive"},
		{name: "negative retries", mutate: func(c *Config) { c.MaxRetries = -1 }, wantErr: "max_retries cannot be negative"},
		{name: "zero retries", mutate: func(c *Config) { c.MaxRetries = 0 }},
		{name: "bad output", mutate: func(c *Config) { c.Settings.OutputFormat = "xml" }, wantErr: "output_format"},
		{name: "bad storage", mutate: func(c *Config) { c.Settings.TokenStorage = "vault" }, wantErr: "token_storage"},
		{name: "missing ca file", mutate: func(c *Config) { c.Settings.CAFile = "/does/not/exist.pem" }, wantErr: "ca_file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestTimeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RequestTimeout = 1.5
	assert.Equal(t, 1500*time.Millisecond, cfg.Timeout())
}

func TestClearTokens(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AccessToken = "a"
	cfg.RefreshToken = "r"
	cfg.ClearTokens()
	assert.Empty(t, cfg.AccessToken)
	assert.Empty(t, cfg.RefreshToken)
}
