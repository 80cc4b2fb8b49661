// Package validation checks user input before it is sent to the backend.
package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"
)

const (
	maxResourceIDLength  = 100
	maxDatasetNameLength = 255
)

var (
	emailPattern        = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	datasetInvalidChars = []string{"<", ">", ":", `"`, "|", "?", "*", "\x00"}

	// TeamRoles lists the roles a team member can hold.
	TeamRoles = []string{"admin", "manager", "developer", "viewer"}
)

// Error reports rejected input.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func errorf(format string, args ...any) error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

// FilePath expands and absolutizes path, then checks existence and kind.
func FilePath(path string, mustExist, mustBeFile bool) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errorf("File path cannot be empty")
	}
	resolved, err := resolve(path)
	if err != nil {
		return "", errorf("Invalid file path: %v", err)
	}
	info, statErr := os.Stat(resolved)
	exists := statErr == nil
	if mustExist && !exists {
		return "", errorf("Path does not exist: %s", resolved)
	}
	if mustBeFile && exists && !info.Mode().IsRegular() {
		return "", errorf("Path is not a file: %s", resolved)
	}
	return resolved, nil
}

// DirectoryPath expands and absolutizes path. A missing directory is created
// when createIfMissing is set, otherwise rejected when mustExist is set.
func DirectoryPath(path string, mustExist, createIfMissing bool) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errorf("Directory path cannot be empty")
	}
	resolved, err := resolve(path)
	if err != nil {
		return "", errorf("Invalid directory path: %v", err)
	}
	info, statErr := os.Stat(resolved)
	if statErr != nil && mustExist {
		if !createIfMissing {
			return "", errorf("Directory does not exist: %s", resolved)
		}
		if err := os.MkdirAll(resolved, 0o755); err != nil {
			return "", errorf("Cannot create directory %s: %v", resolved, err)
		}
		return resolved, nil
	}
	if statErr == nil && !info.IsDir() {
		return "", errorf("Path is not a directory: %s", resolved)
	}
	return resolved, nil
}

func Email(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", errorf("Email cannot be empty")
	}
	if !emailPattern.MatchString(email) || strings.Contains(email, "..") ||
		strings.HasPrefix(email, ".") || strings.HasSuffix(email, ".") {
		return "", errorf("Invalid email format: %s", email)
	}
	return email, nil
}

func ProjectID(id string) (int, error) {
	return NumericID(id, "Project")
}

// NumericID parses a positive integer identifier; kind is used in messages.
func NumericID(id, kind string) (int, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return 0, errorf("%s ID cannot be empty", kind)
	}
	n, err := strconv.Atoi(id)
	if err != nil {
		return 0, errorf("%s ID must be a number: %s", kind, id)
	}
	if n <= 0 {
		return 0, errorf("%s ID must be positive", kind)
	}
	return n, nil
}

func ResourceID(id, kind string) (string, error) {
	if kind == "" {
		kind = "resource"
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return "", errorf("%s ID cannot be empty", kind)
	}
	if strings.IndexFunc(id, unicode.IsSpace) >= 0 {
		return "", errorf("%s ID cannot contain whitespace", kind)
	}
	if len(id) > maxResourceIDLength {
		return "", errorf("%s ID too long (max %d characters)", kind, maxResourceIDLength)
	}
	// IDs become a single URL path segment.
	if strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return "", errorf("Invalid %s ID: %s", kind, id)
	}
	return id, nil
}

// DatasetName validates an optional dataset name. A nil name is passed
// through so callers can fall back to the file name.
func DatasetName(name *string) (*string, error) {
	if name == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*name)
	if trimmed == "" {
		return nil, errorf("Dataset name cannot be empty")
	}
	if len(trimmed) > maxDatasetNameLength {
		return nil, errorf("Dataset name too long (max %d characters)", maxDatasetNameLength)
	}
	for _, c := range datasetInvalidChars {
		if strings.Contains(trimmed, c) {
			return nil, errorf("Dataset name contains invalid characters: %q", datasetInvalidChars)
		}
	}
	return &trimmed, nil
}

func TeamRole(role string) (string, error) {
	role = strings.ToLower(strings.TrimSpace(role))
	if !slices.Contains(TeamRoles, role) {
		return "", errorf("Role must be one of: %s", strings.Join(TeamRoles, ", "))
	}
	return role, nil
}

func resolve(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return filepath.Abs(path)
}
