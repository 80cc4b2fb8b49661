package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

const (
	DefaultBackendURL     = "http://localhost:8000"
	DefaultRequestTimeout = 30.0
	DefaultMaxRetries     = 3
	DefaultPageSize       = 50

	TokenStorageFile     = "file"
	TokenStorageKeychain = "keychain"
)

var outputFormats = []string{"table", "wide", "json", "yaml"}

type Config struct {
	BackendURL     string   `json:"backend_url"`
	AccessToken    string   `json:"access_token,omitempty"`
	RefreshToken   string   `json:"refresh_token,omitempty"`
	RequestTimeout float64  `json:"request_timeout"`
	MaxRetries     int      `json:"max_retries"`
	Settings       Settings `json:"settings"`
}

type Settings struct {
	OutputFormat string `json:"output_format,omitempty"`
	PageSize     int    `json:"page_size,omitempty"`
	TokenStorage string `json:"token_storage,omitempty"`

	// CAFile is a PEM bundle trusted for the backend and storage URLs.
	CAFile                string `json:"ca_file,omitempty"`
	InsecureSkipTLSVerify bool   `json:"insecure_skip_tls_verify,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		BackendURL:     DefaultBackendURL,
		RequestTimeout: DefaultRequestTimeout,
		MaxRetries:     DefaultMaxRetries,
		Settings: Settings{
			OutputFormat: "table",
			PageSize:     DefaultPageSize,
			TokenStorage: TokenStorageFile,
		},
	}
}

// Load reads the config file at path. A missing or unparsable file yields the
// defaults; only unexpected read failures are returned as errors.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is required")
	}
	cfg := DefaultConfig()
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	// Fields absent from the file keep their defaults.
	if err := json.Unmarshal(content, &cfg); err != nil {
		defaults := DefaultConfig()
		return &defaults, nil
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	content, err := json.MarshalIndent(cfg, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, content, 0o600)
}

func (c *Config) Validate() error {
	url := strings.TrimSpace(c.BackendURL)
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return errors.New("backend_url must start with http:// or https://")
	}
	if c.RequestTimeout <= 0 || math.IsNaN(c.RequestTimeout) || math.IsInf(c.RequestTimeout, 0) {
		return errors.New("request_timeout must be positive")
	}
	if c.MaxRetries < 0 {
		return errors.New("max_retries cannot be negative")
	}
	if c.Settings.OutputFormat != "" && !slices.Contains(outputFormats, c.Settings.OutputFormat) {
		return fmt.Errorf("output_format must be one of %s", strings.Join(outputFormats, ", "))
	}
	switch c.Settings.TokenStorage {
	case "", TokenStorageFile, TokenStorageKeychain:
	default:
		return fmt.Errorf("token_storage must be %q or %q", TokenStorageFile, TokenStorageKeychain)
	}
	if c.Settings.PageSize < 0 {
		return errors.New("page_size cannot be negative")
	}
	if c.Settings.CAFile != "" {
		if _, err := os.Stat(c.Settings.CAFile); err != nil {
			return fmt.Errorf("ca_file: %w", err)
		}
	}
	return nil
}

func (c *Config) Timeout() time.Duration {
	if c.RequestTimeout <= 0 {
		return time.Duration(DefaultRequestTimeout * float64(time.Second))
	}
	return time.Duration(c.RequestTimeout * float64(time.Second))
}

func (c *Config) ClearTokens() {
	c.AccessToken = ""
	c.RefreshToken = ""
}

func (c *Config) TokenStorageOrDefault() string {
	if c.Settings.TokenStorage == "" {
		return TokenStorageFile
	}
	return c.Settings.TokenStorage
}
