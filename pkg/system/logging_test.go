package system

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerQuietByDefault(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewLogger(buf, false)
	log.Debugw("request sent", "url", "http://localhost")
	log.Infow("informational")
	require.NoError(t, log.Sync())
	assert.Empty(t, buf.String())

	log.Warnw("retrying", "attempt", 1)
	require.NoError(t, log.Sync())
	assert.Contains(t, buf.String(), "retrying")
}

func TestNewLoggerVerbose(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewLogger(buf, true)
	log.Debugw("request sent", RequestFields("GET", "http://localhost/api/v1/teams/", "rid-1", 0)...)
	require.NoError(t, log.Sync())
	out := buf.String()
	assert.Contains(t, out, "request sent")
	assert.Contains(t, out, "rid-1")
	assert.Contains(t, out, "/api/v1/teams/")
}

func TestRequestFields(t *testing.T) {
	fields := RequestFields("POST", "u", "id", 2)
	require.Len(t, fields, 8)
	assert.Equal(t, "POST", fields[1])
	assert.Equal(t, 2, fields[7])
}
