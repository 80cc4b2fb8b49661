package auth

import (
	"errors"
	"time"
)

// Manager resolves the session token the CLI should send. Tokens supplied
// through the environment or flags take precedence over stored ones.
type Manager struct {
	Store Store
	// Override is a token from the environment or --token; it is never
	// written to the store.
	Override string
	Now      func() time.Time
}

// ErrNotLoggedIn is returned when no token is available.
var ErrNotLoggedIn = errors.New("not logged in")

func (m *Manager) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

// Token returns the access token to use, or ErrNotLoggedIn.
func (m *Manager) Token() (StoredToken, error) {
	if m.Override != "" {
		return StoredToken{AccessToken: m.Override, TokenType: "Bearer"}, nil
	}
	if m.Store == nil {
		return StoredToken{}, ErrNotLoggedIn
	}
	token, ok, err := m.Store.Load()
	if err != nil {
		return StoredToken{}, err
	}
	if !ok {
		return StoredToken{}, ErrNotLoggedIn
	}
	return token, nil
}

// Status summarizes the session for display.
type Status struct {
	LoggedIn   bool
	Source     string
	Expiry     time.Time
	Expired    bool
	HasRefresh bool
}

func (m *Manager) Status() (Status, error) {
	if m.Override != "" {
		return Status{LoggedIn: true, Source: "override"}, nil
	}
	if m.Store == nil {
		return Status{}, nil
	}
	token, err := m.Token()
	if errors.Is(err, ErrNotLoggedIn) {
		return Status{Source: m.Store.Kind()}, nil
	}
	if err != nil {
		return Status{}, err
	}
	return Status{
		LoggedIn:   true,
		Source:     m.Store.Kind(),
		Expiry:     token.Expiry,
		Expired:    token.Expired(m.now()),
		HasRefresh: token.RefreshToken != "",
	}, nil
}

// Invalidate drops the stored session. It is the client's auth-failure hook.
func (m *Manager) Invalidate() error {
	if m.Store == nil {
		return nil
	}
	return m.Store.Clear()
}
