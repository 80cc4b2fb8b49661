package auth

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestManagerOverrideWins(t *testing.T) {
	keyring.MockInit()
	store := &KeychainStore{Service: KeychainService, Account: "http://localhost:8000"}
	require.NoError(t, store.Save(StoredToken{AccessToken: "stored"}))

	m := &Manager{Store: store, Override: "from-env"}
	token, err := m.Token()
	require.NoError(t, err)
	assert.Equal(t, "from-env", token.AccessToken)

	status, err := m.Status()
	require.NoError(t, err)
	assert.Equal(t, "override", status.Source)
}

func TestManagerNotLoggedIn(t *testing.T) {
	m := &Manager{Store: &FileStore{ConfigPath: filepath.Join(t.TempDir(), "config.json")}}
	_, err := m.Token()
	require.ErrorIs(t, err, ErrNotLoggedIn)

	status, err := m.Status()
	require.NoError(t, err)
	assert.False(t, status.LoggedIn)
	assert.Equal(t, "file", status.Source)

	status, err = (&Manager{}).Status()
	require.NoError(t, err)
	assert.False(t, status.LoggedIn)
}

func TestManagerStatusAndInvalidate(t *testing.T) {
	keyring.MockInit()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	store := &KeychainStore{Service: KeychainService, Account: "http://localhost:8000"}
	require.NoError(t, store.Save(StoredToken{AccessToken: "a", RefreshToken: "r", Expiry: now.Add(-time.Minute)}))

	m := &Manager{Store: store, Now: func() time.Time { return now }}
	status, err := m.Status()
	require.NoError(t, err)
	assert.True(t, status.LoggedIn)
	assert.True(t, status.Expired)
	assert.True(t, status.HasRefresh)
	assert.Equal(t, "keychain", status.Source)

	require.NoError(t, m.Invalidate())
	_, err = m.Token()
	require.ErrorIs(t, err, ErrNotLoggedIn)
}
