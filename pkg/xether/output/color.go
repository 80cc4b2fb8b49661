package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
	cyan   = color.New(color.FgCyan)
	bold   = color.New(color.Bold)
)

// StatusColor maps an execution status to its display colour.
func StatusColor(status string) *color.Color {
	switch strings.ToUpper(status) {
	case "COMPLETED", "SUCCESS":
		return green
	case "FAILED", "ERROR":
		return red
	case "RUNNING", "IN_PROGRESS":
		return yellow
	default:
		return cyan
	}
}

func ColorStatus(status string) string {
	return StatusColor(status).Sprint(status)
}

func Bold(s string) string {
	return bold.Sprint(s)
}

func Success(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintln(w, green.Sprint("✓ ")+fmt.Sprintf(format, args...))
}

func Warn(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintln(w, yellow.Sprintf(format, args...))
}

func Green(s string) string {
	return green.Sprint(s)
}

func Yellow(s string) string {
	return yellow.Sprint(s)
}

func Highlight(s string) string {
	return cyan.Sprint(s)
}
