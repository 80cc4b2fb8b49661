package version

import (
	"runtime/debug"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func withBuildInfo(t *testing.T, bi *debug.BuildInfo) {
	t.Helper()
	orig := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, bi != nil }
	t.Cleanup(func() { readBuildInfo = orig })
}

func TestGetBuildInfoDefaults(t *testing.T) {
	withBuildInfo(t, nil)
	info := GetBuildInfo()
	assert.Equal(t, Version, info.Version)
	assert.Equal(t, GitCommit, info.GitCommit)
	assert.NotEmpty(t, info.GoVersion)
	assert.NotEmpty(t, info.Platform)
	assert.True(t, info.BuildTime.IsZero())
}

func TestGetBuildInfoParsesBuildDate(t *testing.T) {
	withBuildInfo(t, nil)
	orig := BuildDate
	t.Cleanup(func() { BuildDate = orig })
	BuildDate = "2026-01-13T20:00:00Z"

	want, _ := time.Parse(time.RFC3339, BuildDate)
	assert.True(t, want.Equal(GetBuildInfo().BuildTime))
}

func TestGetBuildInfoFromModule(t *testing.T) {
	withBuildInfo(t, &debug.BuildInfo{
		Main: debug.Module{Version: "v0.3.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2026-02-01T10:00:00Z"},
		},
	})
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	t.Cleanup(func() { Version, GitCommit, BuildDate = origVersion, origCommit, origDate })
	Version, GitCommit, BuildDate = "dev", "unknown", "unknown"

	info := GetBuildInfo()
	assert.Equal(t, "v0.3.1", info.Version)
	assert.Equal(t, "abc123", info.GitCommit)
	assert.Equal(t, "2026-02-01T10:00:00Z", info.BuildDate)
	assert.False(t, info.BuildTime.IsZero())
}

func TestLdflagsWinOverModuleInfo(t *testing.T) {
	withBuildInfo(t, &debug.BuildInfo{Main: debug.Module{Version: "v0.3.1"}})
	orig := Version
	t.Cleanup(func() { Version = orig })
	Version = "1.2.3"
	assert.Equal(t, "1.2.3", GetBuildInfo().Version)
}
