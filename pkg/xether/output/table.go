package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/tidwall/gjson"
)

// Column renders one field of a backend object.
type Column struct {
	Header string
	Path   string
	Render func(gjson.Result) string
}

func (c Column) value(obj json.RawMessage) string {
	v := gjson.GetBytes(obj, c.Path)
	if c.Render != nil {
		return c.Render(v)
	}
	return textOr("N/A")(v)
}

func WriteTable(w io.Writer, columns []Column, items []json.RawMessage) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	headers := make([]string, len(columns))
	for i, c := range columns {
		headers[i] = c.Header
	}
	_, _ = fmt.Fprintln(tw, strings.Join(headers, "\t"))
	row := make([]string, len(columns))
	for _, item := range items {
		for i, c := range columns {
			row[i] = c.value(item)
		}
		_, _ = fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	_ = tw.Flush()
}

func textOr(fallback string) func(gjson.Result) string {
	return func(v gjson.Result) string {
		if !v.Exists() || v.Type == gjson.Null {
			return fallback
		}
		s := strings.TrimSpace(v.String())
		if s == "" {
			return fallback
		}
		return s
	}
}

// timestamp truncates ISO-8601 values: 19 characters keeps date and time, 10
// keeps the date.
func timestamp(n int, fallback string) func(gjson.Result) string {
	return func(v gjson.Result) string {
		s := v.String()
		if !v.Exists() || s == "" {
			return fallback
		}
		if len(s) > n {
			s = s[:n]
		}
		return s
	}
}

func byteSize(v gjson.Result) string {
	if !v.Exists() || v.Type != gjson.Number {
		return "0 B"
	}
	return humanize.Bytes(v.Uint())
}

func rawNumber(fallback string) func(gjson.Result) string {
	return func(v gjson.Result) string {
		if v.Type != gjson.Number {
			return fallback
		}
		return v.Raw
	}
}

func status(v gjson.Result) string {
	return ColorStatus(textOr("UNKNOWN")(v))
}

var (
	TeamColumns = []Column{
		{Header: "ID", Path: "id"},
		{Header: "NAME", Path: "name"},
		{Header: "DESCRIPTION", Path: "description"},
		{Header: "OWNER_ID", Path: "owner_id"},
		{Header: "CREATED", Path: "created_at", Render: timestamp(19, "N/A")},
	}
	TeamColumnsWide = append(append([]Column{}, TeamColumns...),
		Column{Header: "UPDATED", Path: "updated_at", Render: timestamp(19, "N/A")},
	)

	ProjectColumns = []Column{
		{Header: "ID", Path: "id"},
		{Header: "NAME", Path: "name"},
		{Header: "DESCRIPTION", Path: "description"},
		{Header: "TEAM_ID", Path: "team_id"},
		{Header: "CREATED", Path: "created_at", Render: timestamp(19, "N/A")},
	}
	ProjectColumnsWide = append(append([]Column{}, ProjectColumns...),
		Column{Header: "UPDATED", Path: "updated_at", Render: timestamp(19, "N/A")},
	)

	MemberColumns = []Column{
		{Header: "USER_ID", Path: "user_id"},
		{Header: "EMAIL", Path: "email"},
		{Header: "ROLE", Path: "role"},
		{Header: "JOINED", Path: "created_at", Render: timestamp(19, "N/A")},
	}

	DatasetColumns = []Column{
		{Header: "ID", Path: "id", Render: textOr("")},
		{Header: "NAME", Path: "name", Render: textOr("Unnamed")},
		{Header: "SIZE", Path: "size_bytes", Render: byteSize},
		{Header: "CREATED", Path: "created_at", Render: timestamp(10, "")},
	}
	DatasetColumnsWide = []Column{
		{Header: "ID", Path: "id", Render: textOr("")},
		{Header: "NAME", Path: "name", Render: textOr("Unnamed")},
		{Header: "SIZE_BYTES", Path: "size_bytes", Render: rawNumber("0")},
		{Header: "MIME_TYPE", Path: "mime_type"},
		{Header: "PROJECT_ID", Path: "project_id"},
		{Header: "CREATED", Path: "created_at", Render: timestamp(19, "")},
	}

	ArtifactColumns = []Column{
		{Header: "ID", Path: "id", Render: textOr("")},
		{Header: "NAME", Path: "name", Render: textOr("Unnamed")},
		{Header: "TYPE", Path: "artifact_type", Render: textOr("UNKNOWN")},
		{Header: "SIZE", Path: "size_bytes", Render: byteSize},
		{Header: "CREATED", Path: "created_at", Render: timestamp(10, "")},
	}
	ArtifactColumnsWide = []Column{
		{Header: "ID", Path: "id", Render: textOr("")},
		{Header: "NAME", Path: "name", Render: textOr("Unnamed")},
		{Header: "TYPE", Path: "artifact_type", Render: textOr("UNKNOWN")},
		{Header: "SIZE_BYTES", Path: "size_bytes", Render: rawNumber("0")},
		{Header: "EXECUTION_ID", Path: "execution_id", Render: textOr("-")},
		{Header: "CREATED", Path: "created_at", Render: timestamp(19, "")},
	}

	PipelineColumns = []Column{
		{Header: "ID", Path: "id", Render: textOr("")},
		{Header: "NAME", Path: "name", Render: textOr("Unnamed")},
		{Header: "STATUS", Path: "status", Render: status},
		{Header: "CREATED", Path: "created_at", Render: timestamp(10, "")},
	}

	ExecutionColumns = []Column{
		{Header: "EXEC_ID", Path: "id", Render: textOr("")},
		{Header: "STATUS", Path: "status", Render: status},
		{Header: "STARTED", Path: "started_at", Render: timestamp(19, "-")},
		{Header: "COMPLETED", Path: "completed_at", Render: timestamp(19, "-")},
	}
)
