// Package version holds build metadata for the xether binary. The variables
// are set with -ldflags "-X github.com/xether-ai/xether-cli/pkg/version.Version=...".
package version

import (
	"runtime"
	"runtime/debug"
	"time"
)

var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = runtime.Version()
	Platform  = runtime.GOOS + "/" + runtime.GOARCH

	readBuildInfo = debug.ReadBuildInfo
)

type BuildInfo struct {
	Version   string    `json:"version" yaml:"version"`
	GitCommit string    `json:"gitCommit" yaml:"gitCommit"`
	BuildDate string    `json:"buildDate" yaml:"buildDate"`
	GoVersion string    `json:"goVersion" yaml:"goVersion"`
	Platform  string    `json:"platform" yaml:"platform"`
	BuildTime time.Time `json:"buildTime,omitempty" yaml:"buildTime,omitempty"`
}

// GetBuildInfo returns build metadata. Binaries installed with "go install"
// carry no ldflags; their module version and VCS revision are used instead.
func GetBuildInfo() BuildInfo {
	info := BuildInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: GoVersion,
		Platform:  Platform,
	}
	if bi, ok := readBuildInfo(); ok {
		if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.Version = bi.Main.Version
		}
		for _, s := range bi.Settings {
			switch {
			case s.Key == "vcs.revision" && info.GitCommit == "unknown":
				info.GitCommit = s.Value
			case s.Key == "vcs.time" && info.BuildDate == "unknown":
				info.BuildDate = s.Value
			}
		}
	}
	if t, err := time.Parse(time.RFC3339, info.BuildDate); err == nil {
		info.BuildTime = t
	}
	return info
}
