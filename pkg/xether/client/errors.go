package client

import (
	"errors"
	"fmt"
)

// NetworkError reports a transport failure that persisted through every retry.
type NetworkError struct {
	Attempts int
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error after %d attempt(s): %v", e.Attempts, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

type HTTPError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("request failed (%d): %s", e.StatusCode, e.Message)
}

// AuthError is returned for a 401. Stored credentials have already been
// cleared when it is produced; ClearErr records a failure to do so.
type AuthError struct {
	Message  string
	ClearErr error
}

func (e *AuthError) Error() string {
	msg := "authentication failed"
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

func (e *AuthError) Unwrap() error {
	return e.ClearErr
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return 401
	}
	return 0
}

func IsNotFound(err error) bool {
	return StatusCode(err) == 404
}
