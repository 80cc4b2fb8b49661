package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xether-ai/xether-cli/pkg/xether/auth"
	"github.com/xether-ai/xether-cli/pkg/xether/client"
	"github.com/xether-ai/xether-cli/pkg/xether/transfer"
	"github.com/xether-ai/xether-cli/pkg/xether/validation"
)

// Process exit codes.
const (
	ExitSuccess = 0 // Success
	ExitError   = 1 // General error
	ExitUsage   = 2 // Invalid arguments, validation or configuration error
	ExitAuth    = 3 // Not logged in or credentials rejected
	ExitNetwork = 4 // Backend unreachable after retries
	ExitHTTP    = 5 // Backend or storage returned an error status
)

const loginHint = "run 'xether auth login'"

// UsageError marks bad command line input.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }
func (e *UsageError) Unwrap() error { return e.Err }

type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string { return "invalid configuration: " + e.Err.Error() }
func (e *ConfigError) Unwrap() error { return e.Err }

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var (
		usageErr   *UsageError
		configErr  *ConfigError
		validErr   *validation.Error
		authErr    *client.AuthError
		netErr     *client.NetworkError
		httpErr    *client.HTTPError
		storageErr *transfer.StorageError
	)
	switch {
	case errors.As(err, &authErr), errors.Is(err, auth.ErrNotLoggedIn):
		return ExitAuth
	case errors.As(err, &usageErr), errors.As(err, &configErr), errors.As(err, &validErr):
		return ExitUsage
	case errors.As(err, &netErr):
		return ExitNetwork
	case errors.As(err, &httpErr), errors.As(err, &storageErr):
		return ExitHTTP
	case strings.HasPrefix(err.Error(), "unknown command"),
		strings.HasPrefix(err.Error(), "required flag"),
		strings.Contains(err.Error(), "accepts "):
		return ExitUsage
	default:
		return ExitError
	}
}

// FormatError renders err for stderr, adding a hint where the user can act.
func FormatError(err error) string {
	msg := "Error: " + err.Error()
	if ExitCode(err) == ExitAuth {
		msg += fmt.Sprintf(" (%s)", loginHint)
	}
	return msg
}

// fetchError wraps a failed lookup, naming the resource when it does not exist.
func fetchError(err error, kind string, id any) error {
	if client.IsNotFound(err) {
		return fmt.Errorf("%s %v not found: %w", kind, id, err)
	}
	return fmt.Errorf("failed to fetch %s %v: %w", strings.ToLower(kind), id, err)
}
