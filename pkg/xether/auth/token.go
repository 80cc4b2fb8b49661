package auth

import (
	"time"

	"golang.org/x/oauth2"
)

type StoredToken struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	TokenType    string    `json:"token_type,omitempty"`
	Expiry       time.Time `json:"expiry,omitempty"`
}

func FromOAuth2(t *oauth2.Token) StoredToken {
	if t == nil {
		return StoredToken{}
	}
	return StoredToken{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		TokenType:    t.TokenType,
		Expiry:       t.Expiry,
	}
}

func (t StoredToken) OAuth2() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		TokenType:    t.TokenType,
		Expiry:       t.Expiry,
	}
}

func (t StoredToken) Empty() bool {
	return t.AccessToken == "" && t.RefreshToken == ""
}

// Expired reports whether the token has a known expiry in the past.
func (t StoredToken) Expired(now time.Time) bool {
	return !t.Expiry.IsZero() && now.After(t.Expiry)
}
