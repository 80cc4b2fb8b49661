package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteObject(t *testing.T) {
	obj := json.RawMessage(`{"id":3,"name":"core","tags":["a"]}`)

	buf := &bytes.Buffer{}
	require.NoError(t, WriteObject(buf, FormatJSON, obj))
	assert.JSONEq(t, string(obj), buf.String())
	assert.Contains(t, buf.String(), "\n  \"id\": 3")

	buf.Reset()
	require.NoError(t, WriteObject(buf, FormatYAML, obj))
	assert.Equal(t, "id: 3\nname: core\ntags:\n    - a\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteObject(buf, FormatYAML, []json.RawMessage{obj}))
	assert.Contains(t, buf.String(), "- id: 3")

	require.Error(t, WriteObject(buf, FormatTable, obj))
	require.Error(t, WriteObject(buf, FormatWide, obj))
	require.Error(t, WriteObject(buf, Format("xml"), obj))
}

func TestParseFormat(t *testing.T) {
	for _, f := range []string{"table", "wide", "json", "yaml"} {
		got, err := ParseFormat(f)
		require.NoError(t, err)
		assert.Equal(t, Format(f), got)
	}
	_, err := ParseFormat("csv")
	require.Error(t, err)
	assert.True(t, FormatJSON.Structured())
	assert.False(t, FormatWide.Structured())
}
