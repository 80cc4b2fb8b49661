package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// Response is a fully read backend response.
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
}

func readResponse(resp *http.Response) (*Response, error) {
	defer func() {
		_ = resp.Body.Close()
	}()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// JSON decodes the body into out.
func (r *Response) JSON(out any) error {
	if len(r.Body) == 0 {
		return fmt.Errorf("empty response body (status %d)", r.StatusCode)
	}
	if err := json.Unmarshal(r.Body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (r *Response) Text() string {
	return string(r.Body)
}

// Field returns the value at a gjson path in a JSON body.
func (r *Response) Field(path string) gjson.Result {
	return gjson.GetBytes(r.Body, path)
}

func errorMessage(r *Response) string {
	if gjson.ValidBytes(r.Body) {
		for _, key := range []string{"detail", "error", "message"} {
			v := gjson.GetBytes(r.Body, key)
			if !v.Exists() {
				continue
			}
			// FastAPI validation errors carry a list under detail.
			if v.IsArray() || v.IsObject() {
				return v.Raw
			}
			if msg := strings.TrimSpace(v.String()); msg != "" {
				return msg
			}
		}
	}
	if msg := strings.TrimSpace(r.Text()); msg != "" {
		return msg
	}
	if text := http.StatusText(r.StatusCode); text != "" {
		return text
	}
	return r.Status
}
