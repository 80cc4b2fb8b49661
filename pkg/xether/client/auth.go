package client

import (
	"context"
	"errors"
	"net/url"
	"time"

	"golang.org/x/oauth2"
)

type AuthService struct {
	client *Client
}

func (c *Client) Auth() *AuthService {
	return &AuthService{client: c}
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Login exchanges a username and password for tokens using the OAuth2
// password grant form the backend expects.
func (s *AuthService) Login(ctx context.Context, username, password string) (*oauth2.Token, error) {
	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", username)
	form.Set("password", password)
	resp, err := s.client.PostForm(ctx, endpoint("auth", "login"), form)
	if err != nil {
		return nil, err
	}
	if err := expectStatus(resp, 200); err != nil {
		return nil, err
	}
	var tr tokenResponse
	if err := resp.JSON(&tr); err != nil {
		return nil, err
	}
	if tr.AccessToken == "" {
		return nil, errors.New("login response did not include an access token")
	}
	token := &oauth2.Token{
		AccessToken:  tr.AccessToken,
		RefreshToken: tr.RefreshToken,
		TokenType:    tr.TokenType,
	}
	if token.TokenType == "" {
		token.TokenType = "Bearer"
	}
	if tr.ExpiresIn > 0 {
		token.Expiry = time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second)
	}
	return token, nil
}

// Me returns the profile of the authenticated user.
func (s *AuthService) Me(ctx context.Context) (Object, error) {
	resp, err := s.client.Get(ctx, endpoint("auth", "me"), nil)
	if err != nil {
		return nil, err
	}
	return decodeObject(resp)
}
