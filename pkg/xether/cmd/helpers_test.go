package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/xether-ai/xether-cli/pkg/xether/config"
)

func init() {
	color.NoColor = true
}

type seenRequest struct {
	Method string
	URI    string
	Auth   string
	Type   string
	Body   string
}

type route struct {
	status int
	body   string
}

// testEnv runs commands against a fake backend with an isolated config file
// and environment.
type testEnv struct {
	t          *testing.T
	server     *httptest.Server
	configPath string
	env        map[string]string
	stdin      string
	out        bytes.Buffer
	errOut     bytes.Buffer
	delays     []time.Duration

	mu       sync.Mutex
	routes   map[string]route
	uploads  map[string][]byte
	requests []seenRequest
}

func newTestEnv(t *testing.T, routes map[string]route) *testEnv {
	t.Helper()
	e := &testEnv{
		t:          t,
		configPath: filepath.Join(t.TempDir(), "config.json"),
		env:        map[string]string{},
		routes:     routes,
		uploads:    map[string][]byte{},
	}
	e.server = httptest.NewServer(http.HandlerFunc(e.serve))
	t.Cleanup(e.server.Close)

	cfg := config.DefaultConfig()
	cfg.BackendURL = e.server.URL
	cfg.AccessToken = "tok"
	cfg.RefreshToken = "ref"
	require.NoError(t, config.Save(e.configPath, &cfg))
	return e
}

func (e *testEnv) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.requests = append(e.requests, seenRequest{
		Method: r.Method,
		URI:    r.URL.RequestURI(),
		Auth:   r.Header.Get("Authorization"),
		Type:   r.Header.Get("Content-Type"),
		Body:   string(body),
	})
	if strings.HasPrefix(r.URL.Path, "/storage/") {
		switch r.Method {
		case http.MethodPut:
			e.uploads[r.URL.Path] = body
			w.WriteHeader(http.StatusOK)
		case http.MethodGet:
			data, ok := e.uploads[r.URL.Path]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			_, _ = w.Write(data)
		}
		return
	}
	resp, ok := e.routes[r.Method+" "+r.URL.RequestURI()]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Not Found"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	_, _ = w.Write([]byte(strings.ReplaceAll(resp.body, "{{server}}", e.server.URL)))
}

func (e *testEnv) run(args ...string) error {
	e.t.Helper()
	e.out.Reset()
	e.errOut.Reset()
	root := NewRootCommand(Config{
		ConfigPath:   e.configPath,
		OutputWriter: &e.out,
		ErrorWriter:  &e.errOut,
		Input:        strings.NewReader(e.stdin),
		LookupEnv: func(key string) (string, bool) {
			v, ok := e.env[key]
			return v, ok
		},
		Sleep: func(_ context.Context, d time.Duration) error {
			e.delays = append(e.delays, d)
			return nil
		},
	})
	root.SetArgs(args)
	return root.Execute()
}

func (e *testEnv) seen() []seenRequest {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]seenRequest(nil), e.requests...)
}

func (e *testEnv) lastRequest() seenRequest {
	reqs := e.seen()
	require.NotEmpty(e.t, reqs)
	return reqs[len(reqs)-1]
}

func (e *testEnv) savedConfig() *config.Config {
	cfg, err := config.Load(e.configPath)
	require.NoError(e.t, err)
	return cfg
}

func decodeBody(t *testing.T, body string) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	return out
}
