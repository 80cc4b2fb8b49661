package auth

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
	"golang.org/x/oauth2"

	"github.com/xether-ai/xether-cli/pkg/xether/config"
)

func TestNewStore(t *testing.T) {
	cfg := config.DefaultConfig()
	store, err := NewStore(&cfg, "/tmp/cfg.json")
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, store)

	cfg.Settings.TokenStorage = config.TokenStorageKeychain
	store, err = NewStore(&cfg, "/tmp/cfg.json")
	require.NoError(t, err)
	require.IsType(t, &KeychainStore{}, store)
	assert.Equal(t, config.DefaultBackendURL, store.(*KeychainStore).Account)

	cfg.Settings.TokenStorage = "vault"
	_, err = NewStore(&cfg, "/tmp/cfg.json")
	require.Error(t, err)
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := config.DefaultConfig()
	cfg.BackendURL = "https://api.xether.ai"
	require.NoError(t, config.Save(path, &cfg))

	store := &FileStore{ConfigPath: path}
	_, ok, err := store.Load()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Save(StoredToken{AccessToken: "a", RefreshToken: "r"}))
	token, ok, err := store.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a", token.AccessToken)
	assert.Equal(t, "r", token.RefreshToken)

	saved, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://api.xether.ai", saved.BackendURL, "other settings survive token writes")

	require.NoError(t, store.Clear())
	saved, err = config.Load(path)
	require.NoError(t, err)
	assert.Empty(t, saved.AccessToken)
	assert.Empty(t, saved.RefreshToken)
}

func TestKeychainStoreRoundTrip(t *testing.T) {
	keyring.MockInit()
	store := &KeychainStore{Service: KeychainService, Account: "https://api.xether.ai/"}

	_, ok, err := store.Load()
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, store.Clear(), "clearing an empty keychain is not an error")

	expiry := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, store.Save(StoredToken{AccessToken: "a", RefreshToken: "r", TokenType: "bearer", Expiry: expiry}))

	secret, err := keyring.Get(KeychainService, "https://api.xether.ai")
	require.NoError(t, err)
	assert.Contains(t, secret, `"access_token":"a"`)

	token, ok, err := store.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, expiry.Equal(token.Expiry))

	require.NoError(t, store.Clear())
	_, ok, err = store.Load()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStoredTokenConversion(t *testing.T) {
	src := &oauth2.Token{AccessToken: "a", RefreshToken: "r", TokenType: "bearer", Expiry: time.Unix(100, 0)}
	stored := FromOAuth2(src)
	assert.Equal(t, "r", stored.RefreshToken)
	assert.Equal(t, src.Expiry, stored.OAuth2().Expiry)
	assert.True(t, FromOAuth2(nil).Empty())
	assert.True(t, stored.Expired(time.Unix(200, 0)))
	assert.False(t, StoredToken{AccessToken: "a"}.Expired(time.Now()))
}
