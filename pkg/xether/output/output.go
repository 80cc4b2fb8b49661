package output

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatWide  Format = "wide"
)

var formats = []Format{FormatTable, FormatWide, FormatJSON, FormatYAML}

func ParseFormat(s string) (Format, error) {
	f := Format(s)
	if !slices.Contains(formats, f) {
		return "", fmt.Errorf("unknown output format: %s", s)
	}
	return f, nil
}

// Structured reports whether the format is machine readable.
func (f Format) Structured() bool {
	return f == FormatJSON || f == FormatYAML
}

func WriteObject(w io.Writer, format Format, obj any) error {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(obj, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case FormatYAML:
		generic, err := toGeneric(obj)
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(generic)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(w, string(data))
		return err
	case FormatTable:
		return fmt.Errorf("table format requires a specific formatter")
	case FormatWide:
		return fmt.Errorf("wide format requires a specific formatter")
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

// toGeneric round-trips obj through JSON so raw backend payloads render as
// YAML maps rather than byte slices.
func toGeneric(obj any) (any, error) {
	data, err := json.Marshal(obj)
	if err != nil {
		return nil, err
	}
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, err
	}
	return generic, nil
}
