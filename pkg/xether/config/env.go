package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvConfigPath     = "XETHER_CONFIG"
	EnvBackendURL     = "XETHER_BACKEND_URL"
	EnvAccessToken    = "XETHER_ACCESS_TOKEN"
	EnvRefreshToken   = "XETHER_REFRESH_TOKEN"
	EnvRequestTimeout = "XETHER_REQUEST_TIMEOUT"
	EnvMaxRetries     = "XETHER_MAX_RETRIES"
	EnvOutput         = "XETHER_OUTPUT"
	EnvTokenStorage   = "XETHER_TOKEN_STORAGE"
	EnvVerbose        = "XETHER_VERBOSE"
	EnvCAFile         = "XETHER_CA_FILE"
	EnvInsecure       = "XETHER_INSECURE_SKIP_TLS_VERIFY"
)

// LookupFunc matches the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// LoadDotEnv populates the process environment from a dotenv file. Variables
// that are already set win over the file, and a missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// WithEnv returns a copy of c with environment overrides applied. The
// receiver is left untouched so overrides never end up in the saved file.
func (c *Config) WithEnv(lookup LookupFunc) (*Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	out := *c
	if v, ok := nonEmpty(lookup, EnvBackendURL); ok {
		out.BackendURL = v
	}
	if v, ok := nonEmpty(lookup, EnvAccessToken); ok {
		out.AccessToken = v
	}
	if v, ok := nonEmpty(lookup, EnvRefreshToken); ok {
		out.RefreshToken = v
	}
	if v, ok := nonEmpty(lookup, EnvRequestTimeout); ok {
		timeout, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", EnvRequestTimeout, v, err)
		}
		out.RequestTimeout = timeout
	}
	if v, ok := nonEmpty(lookup, EnvMaxRetries); ok {
		retries, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", EnvMaxRetries, v, err)
		}
		out.MaxRetries = retries
	}
	if v, ok := nonEmpty(lookup, EnvOutput); ok {
		out.Settings.OutputFormat = v
	}
	if v, ok := nonEmpty(lookup, EnvTokenStorage); ok {
		out.Settings.TokenStorage = v
	}
	if v, ok := nonEmpty(lookup, EnvCAFile); ok {
		out.Settings.CAFile = v
	}
	if v, ok := nonEmpty(lookup, EnvInsecure); ok {
		insecure, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", EnvInsecure, v, err)
		}
		out.Settings.InsecureSkipTLSVerify = insecure
	}
	return &out, nil
}

func nonEmpty(lookup LookupFunc, key string) (string, bool) {
	v, ok := lookup(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}
