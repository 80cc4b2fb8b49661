package output

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProgressThrottlesAndFinishes(t *testing.T) {
	buf := &bytes.Buffer{}
	p := NewProgress(buf, "Uploading train.csv", time.Hour)
	p.Update(100, 1000)
	p.Update(500, 1000)
	p.Update(1000, 1000)
	p.Done()

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "\r"), "first update and final line only")
	assert.Contains(t, out, "100 B / 1.0 kB (10%)")
	assert.True(t, strings.HasSuffix(out, "1.0 kB / 1.0 kB (100%)\n"))
}

func TestProgressUnknownTotal(t *testing.T) {
	buf := &bytes.Buffer{}
	p := NewProgress(buf, "Downloading", 0)
	p.Update(2048, -1)
	p.Done()
	assert.Contains(t, buf.String(), "Downloading 2.0 kB")
}

func TestProgressDoneWithoutUpdates(t *testing.T) {
	buf := &bytes.Buffer{}
	NewProgress(buf, "x", time.Second).Done()
	assert.Empty(t, buf.String())
}
