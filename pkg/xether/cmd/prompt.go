package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

var errNonInteractive = errors.New("input required but --non-interactive is set")

func (rt *runtimeState) readLine(prompt string) (string, error) {
	if rt.nonInteractive {
		return "", &UsageError{Err: errNonInteractive}
	}
	_, _ = fmt.Fprint(rt.errWriter, prompt)
	line, err := rt.input.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// readSecret reads without echo when stdin is a terminal.
func (rt *runtimeState) readSecret(prompt string) (string, error) {
	if rt.nonInteractive {
		return "", &UsageError{Err: errNonInteractive}
	}
	if f, ok := rt.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		_, _ = fmt.Fprint(rt.errWriter, prompt)
		secret, err := term.ReadPassword(int(f.Fd()))
		_, _ = fmt.Fprintln(rt.errWriter)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(secret), nil
	}
	return rt.readLine(prompt)
}

// confirm asks a yes/no question; anything but y/yes is a no.
func (rt *runtimeState) confirm(question string) (bool, error) {
	answer, err := rt.readLine(question + " [y/N]: ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// confirmDestructive returns true when the operation may proceed. skip is the
// value of the command's --yes/--force flag.
func (rt *runtimeState) confirmDestructive(skip bool, warning string) (bool, error) {
	if skip {
		return true, nil
	}
	if warning != "" {
		_, _ = fmt.Fprintln(rt.errWriter, warning)
	}
	ok, err := rt.confirm("Are you sure you want to continue?")
	if err != nil {
		return false, err
	}
	if !ok {
		rt.println("Operation cancelled.")
	}
	return ok, nil
}
