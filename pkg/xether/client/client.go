package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/xether-ai/xether-cli/pkg/system"
)

const (
	DefaultTimeout    = 30 * time.Second
	DefaultMaxRetries = 3
	RequestIDHeader   = "X-Request-ID"
)

// BackoffFunc returns the delay before retry number attempt (zero based).
type BackoffFunc func(attempt int) time.Duration

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// AuthFailureHandler is called once when the backend rejects the credentials.
type AuthFailureHandler func() error

type Client struct {
	baseURL       *url.URL
	token         *oauth2.Token
	http          *http.Client
	timeout       time.Duration
	userAgent     string
	maxRetries    int
	backoff       BackoffFunc
	sleep         SleepFunc
	onAuthFailure AuthFailureHandler
	log           *zap.SugaredLogger
}

type Option func(*Client) error

func New(opts ...Option) (*Client, error) {
	c := &Client{
		http:       &http.Client{},
		timeout:    DefaultTimeout,
		userAgent:  "xether-cli",
		maxRetries: DefaultMaxRetries,
		backoff:    ExponentialBackoff,
		sleep:      sleepContext,
		log:        zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.baseURL == nil {
		return nil, errors.New("server is required")
	}
	c.http.Timeout = c.timeout
	return c, nil
}

func WithServer(server string) Option {
	return func(c *Client) error {
		if server == "" {
			return errors.New("server is required")
		}
		parsed, err := url.Parse(server)
		if err != nil {
			return fmt.Errorf("invalid server: %w", err)
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return fmt.Errorf("invalid server %q: scheme must be http or https", server)
		}
		c.baseURL = parsed
		return nil
	}
}

// WithToken sets a bearer access token. An empty token leaves the client
// unauthenticated.
func WithToken(token string) Option {
	return WithOAuth2Token(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
}

// WithOAuth2Token sets the session token as loaded from a token store.
func WithOAuth2Token(token *oauth2.Token) Option {
	return func(c *Client) error {
		if token == nil || token.AccessToken == "" {
			c.token = nil
			return nil
		}
		c.token = token
		return nil
	}
}

func WithUserAgent(userAgent string) Option {
	return func(c *Client) error {
		c.userAgent = userAgent
		return nil
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) error {
		if timeout <= 0 {
			return errors.New("timeout must be positive")
		}
		c.timeout = timeout
		return nil
	}
}

func WithMaxRetries(retries int) Option {
	return func(c *Client) error {
		if retries < 0 {
			return errors.New("max retries cannot be negative")
		}
		c.maxRetries = retries
		return nil
	}
}

func WithBackoff(backoff BackoffFunc) Option {
	return func(c *Client) error {
		if backoff != nil {
			c.backoff = backoff
		}
		return nil
	}
}

func WithSleeper(sleep SleepFunc) Option {
	return func(c *Client) error {
		if sleep != nil {
			c.sleep = sleep
		}
		return nil
	}
}

func WithAuthFailureHandler(handler AuthFailureHandler) Option {
	return func(c *Client) error {
		c.onAuthFailure = handler
		return nil
	}
}

func WithLogger(log *zap.SugaredLogger) Option {
	return func(c *Client) error {
		if log != nil {
			c.log = log
		}
		return nil
	}
}

// WithHTTPClient replaces the underlying transport client. Its Timeout is
// overwritten by the configured request timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return errors.New("http client is nil")
		}
		c.http = hc
		return nil
	}
}

// WithTLSConfig trusts the PEM bundle in caFile instead of the system roots,
// or skips verification when insecureSkipTLSVerify is set.
func WithTLSConfig(caFile string, insecureSkipTLSVerify bool) Option {
	return func(c *Client) error {
		tlsConfig, err := LoadTLSConfig(caFile, insecureSkipTLSVerify)
		if err != nil {
			return err
		}
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = tlsConfig
		c.http = &http.Client{Transport: transport}
		return nil
	}
}

func LoadTLSConfig(caFile string, insecure bool) (*tls.Config, error) {
	tlsConfig := &tls.Config{MinVersion: tls.VersionTLS12, InsecureSkipVerify: insecure} //nolint:gosec // opt-in flag
	if caFile == "" {
		return tlsConfig, nil
	}
	data, err := os.ReadFile(caFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA file: %w", err)
	}
	pool := x509.NewCertPool()
	if ok := pool.AppendCertsFromPEM(data); !ok {
		return nil, errors.New("failed to parse CA file")
	}
	tlsConfig.RootCAs = pool
	return tlsConfig, nil
}

// ExponentialBackoff waits 1s, 2s, 4s, ... before successive retries.
func ExponentialBackoff(attempt int) time.Duration {
	return time.Duration(math.Pow(2, float64(attempt))) * time.Second
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Authenticated reports whether requests currently carry a bearer token.
func (c *Client) Authenticated() bool {
	return c.token != nil && c.token.AccessToken != ""
}

func (c *Client) Get(ctx context.Context, endpoint string, query url.Values) (*Response, error) {
	if encoded := query.Encode(); encoded != "" {
		endpoint = endpoint + "?" + encoded
	}
	return c.do(ctx, http.MethodGet, endpoint, nil, "")
}

func (c *Client) Post(ctx context.Context, endpoint string, body any) (*Response, error) {
	payload, err := marshalBody(body)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPost, endpoint, payload, "application/json")
}

func (c *Client) PostForm(ctx context.Context, endpoint string, form url.Values) (*Response, error) {
	return c.do(ctx, http.MethodPost, endpoint, []byte(form.Encode()), "application/x-www-form-urlencoded")
}

func (c *Client) Patch(ctx context.Context, endpoint string, body any) (*Response, error) {
	payload, err := marshalBody(body)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPatch, endpoint, payload, "application/json")
}

func (c *Client) Delete(ctx context.Context, endpoint string) (*Response, error) {
	return c.do(ctx, http.MethodDelete, endpoint, nil, "")
}

func marshalBody(body any) ([]byte, error) {
	switch v := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case json.RawMessage:
		return v, nil
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	return payload, nil
}

func (c *Client) resolve(endpoint string) (string, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint: %w", err)
	}
	full := *c.baseURL
	// Trailing slashes are significant to the backend's routing.
	full.Path = strings.TrimRight(full.Path, "/") + "/" + strings.TrimLeft(parsed.Path, "/")
	// Keep escaped separators inside path segments such as resource ids.
	full.RawPath = strings.TrimRight(c.baseURL.EscapedPath(), "/") + "/" + strings.TrimLeft(parsed.EscapedPath(), "/")
	full.RawQuery = parsed.RawQuery
	return full.String(), nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, payload []byte, contentType string) (*Response, error) {
	target, err := c.resolve(endpoint)
	if err != nil {
		return nil, err
	}
	requestID := uuid.NewString()

	for attempt := 0; ; attempt++ {
		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, target, body)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}
		if c.userAgent != "" {
			req.Header.Set("User-Agent", c.userAgent)
		}
		req.Header.Set(RequestIDHeader, requestID)
		if c.Authenticated() {
			c.token.SetAuthHeader(req)
		}

		c.log.Debugw("sending request", system.RequestFields(method, target, requestID, attempt)...)
		response, err := c.send(req)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			if attempt >= c.maxRetries {
				return nil, &NetworkError{Attempts: attempt + 1, Err: err}
			}
			delay := c.backoff(attempt)
			c.log.Debugw("request failed, retrying", "requestID", requestID, "attempt", attempt, "delay", delay, "error", err)
			if err := c.sleep(ctx, delay); err != nil {
				return nil, err
			}
			continue
		}
		c.log.Debugw("received response", "requestID", requestID, "status", response.StatusCode)

		switch {
		case response.StatusCode == http.StatusUnauthorized:
			return nil, c.handleUnauthorized(response)
		case response.StatusCode >= http.StatusBadRequest:
			return nil, &HTTPError{
				StatusCode: response.StatusCode,
				Message:    errorMessage(response),
				Body:       response.Body,
			}
		}
		return response, nil
	}
}

// send performs one round trip. A connection dropped while the body is read
// fails the attempt like a failed dial.
func (c *Client) send(req *http.Request) (*Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	return readResponse(resp)
}

func (c *Client) handleUnauthorized(resp *Response) error {
	c.token = nil
	authErr := &AuthError{Message: errorMessage(resp)}
	if c.onAuthFailure != nil {
		if err := c.onAuthFailure(); err != nil {
			c.log.Warnw("failed to clear stored credentials", "error", err)
			authErr.ClearErr = err
		}
	}
	return authErr
}
