package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapLookup(values map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestWithEnvOverrides(t *testing.T) {
	cfg := DefaultConfig()
	effective, err := cfg.WithEnv(mapLookup(map[string]string{
		EnvBackendURL:     "https://api.xether.ai",
		EnvAccessToken:    "test-token",
		EnvRequestTimeout: "60",
		EnvMaxRetries:     "5",
		EnvOutput:         "json",
		EnvCAFile:         "/etc/xether/ca.pem",
		EnvInsecure:       "true",
	}))
	require.NoError(t, err)
	assert.Equal(t, "https://api.xether.ai", effective.BackendURL)
	assert.Equal(t, "test-token", effective.AccessToken)
	assert.Equal(t, 60.0, effective.RequestTimeout)
	assert.Equal(t, 5, effective.MaxRetries)
	assert.Equal(t, "json", effective.Settings.OutputFormat)
	assert.Equal(t, "/etc/xether/ca.pem", effective.Settings.CAFile)
	assert.True(t, effective.Settings.InsecureSkipTLSVerify)

	// the source config is never modified
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestWithEnvIgnoresBlankValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BackendURL = "https://file.xether.ai"
	effective, err := cfg.WithEnv(mapLookup(map[string]string{EnvBackendURL: "  "}))
	require.NoError(t, err)
	assert.Equal(t, "https://file.xether.ai", effective.BackendURL)
}

func TestWithEnvInvalidNumbers(t *testing.T) {
	cfg := DefaultConfig()
	_, err := cfg.WithEnv(mapLookup(map[string]string{EnvRequestTimeout: "soon"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvRequestTimeout)

	_, err = cfg.WithEnv(mapLookup(map[string]string{EnvMaxRetries: "many"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvMaxRetries)

	_, err = cfg.WithEnv(mapLookup(map[string]string{EnvInsecure: "maybe"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvInsecure)
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("XETHER_TEST_DOTENV_VALUE=from-file\n"), 0o600))
	t.Setenv("XETHER_TEST_DOTENV_VALUE", "")
	require.NoError(t, os.Unsetenv("XETHER_TEST_DOTENV_VALUE"))

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-file", os.Getenv("XETHER_TEST_DOTENV_VALUE"))
}

func TestLoadDotEnvDoesNotOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("XETHER_TEST_DOTENV_KEEP=from-file\n"), 0o600))
	t.Setenv("XETHER_TEST_DOTENV_KEEP", "from-env")

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-env", os.Getenv("XETHER_TEST_DOTENV_KEEP"))
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")))
	require.NoError(t, LoadDotEnv(""))
}

func TestDefaultConfigPathFromEnv(t *testing.T) {
	t.Setenv(EnvConfigPath, "/tmp/custom/config.json")
	assert.Equal(t, "/tmp/custom/config.json", DefaultConfigPath())
}

func TestDefaultConfigPathUnderHome(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	home := t.TempDir()
	t.Setenv("HOME", home)
	assert.Equal(t, filepath.Join(home, ".xether", "config.json"), DefaultConfigPath())
}
