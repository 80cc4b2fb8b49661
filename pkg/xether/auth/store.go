package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/xether-ai/xether-cli/pkg/xether/config"
)

const KeychainService = "xether-cli"

// Store persists one session token. Load returns ok=false when nothing is
// stored.
type Store interface {
	Load() (StoredToken, bool, error)
	Save(StoredToken) error
	Clear() error
	Kind() string
}

// NewStore returns the store selected by the config's token_storage setting.
// Tokens always live alongside the config file at configPath or in the
// keychain entry for the config's backend URL.
func NewStore(cfg *config.Config, configPath string) (Store, error) {
	switch cfg.TokenStorageOrDefault() {
	case config.TokenStorageFile:
		return &FileStore{ConfigPath: configPath}, nil
	case config.TokenStorageKeychain:
		return &KeychainStore{Service: KeychainService, Account: cfg.BackendURL}, nil
	default:
		return nil, fmt.Errorf("unknown token storage %q", cfg.Settings.TokenStorage)
	}
}

// FileStore keeps tokens in the access_token/refresh_token fields of the
// config file. Expiry is not persisted there.
type FileStore struct {
	ConfigPath string
}

func (s *FileStore) Kind() string { return config.TokenStorageFile }

func (s *FileStore) Load() (StoredToken, bool, error) {
	cfg, err := config.Load(s.ConfigPath)
	if err != nil {
		return StoredToken{}, false, err
	}
	token := StoredToken{AccessToken: cfg.AccessToken, RefreshToken: cfg.RefreshToken, TokenType: "Bearer"}
	if token.AccessToken == "" {
		return StoredToken{}, false, nil
	}
	return token, true, nil
}

func (s *FileStore) Save(token StoredToken) error {
	return s.update(func(cfg *config.Config) {
		cfg.AccessToken = token.AccessToken
		cfg.RefreshToken = token.RefreshToken
	})
}

func (s *FileStore) Clear() error {
	return s.update(func(cfg *config.Config) {
		cfg.ClearTokens()
	})
}

func (s *FileStore) update(mutate func(*config.Config)) error {
	cfg, err := config.Load(s.ConfigPath)
	if err != nil {
		return err
	}
	mutate(cfg)
	return config.Save(s.ConfigPath, cfg)
}

// KeychainStore keeps the token as a JSON secret in the OS keychain, one
// entry per backend URL.
type KeychainStore struct {
	Service string
	Account string
}

func (s *KeychainStore) Kind() string { return config.TokenStorageKeychain }

func (s *KeychainStore) account() string {
	return strings.TrimRight(s.Account, "/")
}

func (s *KeychainStore) Load() (StoredToken, bool, error) {
	secret, err := keyring.Get(s.Service, s.account())
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return StoredToken{}, false, nil
		}
		return StoredToken{}, false, fmt.Errorf("failed to read keychain: %w", err)
	}
	var token StoredToken
	if err := json.Unmarshal([]byte(secret), &token); err != nil {
		return StoredToken{}, false, fmt.Errorf("failed to parse keychain token: %w", err)
	}
	return token, token.AccessToken != "", nil
}

func (s *KeychainStore) Save(token StoredToken) error {
	content, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}
	if err := keyring.Set(s.Service, s.account(), string(content)); err != nil {
		return fmt.Errorf("failed to write keychain: %w", err)
	}
	return nil
}

func (s *KeychainStore) Clear() error {
	if err := keyring.Delete(s.Service, s.account()); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to clear keychain: %w", err)
	}
	return nil
}
