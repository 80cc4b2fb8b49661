package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func raw(items ...string) []json.RawMessage {
	out := make([]json.RawMessage, len(items))
	for i, s := range items {
		out[i] = json.RawMessage(s)
	}
	return out
}

func TestWriteTeamTable(t *testing.T) {
	buf := &bytes.Buffer{}
	WriteTable(buf, TeamColumns, raw(
		`{"id":1,"name":"core","description":"platform team","owner_id":7,"created_at":"2025-03-04T05:06:07.123456"}`,
		`{"id":2,"name":"ml","owner_id":8,"created_at":null}`,
	))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"ID", "NAME", "DESCRIPTION", "OWNER_ID", "CREATED"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"1", "core", "platform", "team", "7", "2025-03-04T05:06:07"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"2", "ml", "N/A", "8", "N/A"}, strings.Fields(lines[2]))
}

func TestWriteDatasetTables(t *testing.T) {
	items := raw(
		`{"id":"d1","name":"train.csv","size_bytes":2048000,"mime_type":"text/csv","project_id":4,"created_at":"2025-01-02T10:00:00"}`,
		`{"id":"d2"}`,
	)
	buf := &bytes.Buffer{}
	WriteTable(buf, DatasetColumns, items)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"d1", "train.csv", "2.0", "MB", "2025-01-02"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"d2", "Unnamed", "0", "B"}, strings.Fields(lines[2]))

	buf.Reset()
	WriteTable(buf, DatasetColumnsWide, items)
	assert.Contains(t, buf.String(), "2048000")
	assert.Contains(t, buf.String(), "text/csv")
}

func TestWriteArtifactTable(t *testing.T) {
	buf := &bytes.Buffer{}
	WriteTable(buf, ArtifactColumns, raw(`{"id":"a1","name":"model.bin","size_bytes":10}`))
	fields := strings.Fields(strings.Split(strings.TrimSpace(buf.String()), "\n")[1])
	assert.Equal(t, []string{"a1", "model.bin", "UNKNOWN", "10", "B"}, fields)
}

func TestWriteExecutionTable(t *testing.T) {
	buf := &bytes.Buffer{}
	WriteTable(buf, ExecutionColumns, raw(
		`{"id":"e1","status":"COMPLETED","started_at":"2025-01-02T10:00:00Z","completed_at":"2025-01-02T10:05:00Z"}`,
		`{"id":"e2","status":"RUNNING","started_at":"2025-01-02T11:00:00Z"}`,
	))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"e1", "COMPLETED", "2025-01-02T10:00:00", "2025-01-02T10:05:00"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"e2", "RUNNING", "2025-01-02T11:00:00", "-"}, strings.Fields(lines[2]))
}

func TestWriteTableEmpty(t *testing.T) {
	buf := &bytes.Buffer{}
	WriteTable(buf, PipelineColumns, nil)
	assert.Equal(t, []string{"ID", "NAME", "STATUS", "CREATED"}, strings.Fields(buf.String()))
}

func TestWriteDetails(t *testing.T) {
	buf := &bytes.Buffer{}
	WriteDetails(buf, "Team Details: core", TeamFields, json.RawMessage(`{"id":1,"name":"core","owner_id":7}`))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Team Details: core\n"))
	assert.Contains(t, out, "Owner ID:")
	assert.Regexp(t, `Description:\s+N/A`, out)

	buf.Reset()
	WriteAllFields(buf, "Dataset Info: x", json.RawMessage(`{"id":"d1","name":"x","description":null}`))
	out = buf.String()
	assert.Regexp(t, `id:\s+d1`, out)
	assert.Regexp(t, `description:\s+None`, out)
	assert.Less(t, strings.Index(out, "id:"), strings.Index(out, "name:"))
}

func TestStatusColor(t *testing.T) {
	assert.Equal(t, green, StatusColor("COMPLETED"))
	assert.Equal(t, green, StatusColor("SUCCESS"))
	assert.Equal(t, red, StatusColor("FAILED"))
	assert.Equal(t, red, StatusColor("ERROR"))
	assert.Equal(t, yellow, StatusColor("RUNNING"))
	assert.Equal(t, yellow, StatusColor("IN_PROGRESS"))
	assert.Equal(t, cyan, StatusColor("PENDING"))
	assert.Equal(t, "PENDING", ColorStatus("PENDING"))
}
