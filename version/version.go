// Package version exposes build version information for the service.
//
// Version is set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/nestora/nestora-api/version.Version=1.2.0"
//
// When built from a module with VCS metadata, the commit hash and dirty
// flag are picked up from the embedded build info.
package version

import (
	"fmt"
	"runtime/debug"
	"time"
)

// Version is the service version, overridden at build time.
var Version = "dev"

// Info describes the running build.
type Info struct {
	Version   string    `json:"version"`
	GitCommit string    `json:"git_commit,omitempty"`
	GoVersion string    `json:"go_version,omitempty"`
	BuildDate time.Time `json:"build_date,omitempty"`
	IsDirty   bool      `json:"is_dirty,omitempty"`
}

// Get returns version information for the running binary, combining the
// compile-time Version with VCS metadata from the build info when present.
func Get() Info {
	info := Info{Version: Version}

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}

	info.GoVersion = buildInfo.GoVersion
	for _, setting := range buildInfo.Settings {
		switch setting.Key {
		case "vcs.revision":
			info.GitCommit = setting.Value
			if len(info.GitCommit) > 7 {
				info.GitCommit = info.GitCommit[:7]
			}
		case "vcs.modified":
			info.IsDirty = setting.Value == "true"
		case "vcs.time":
			if t, err := time.Parse(time.RFC3339, setting.Value); err == nil {
				info.BuildDate = t
			}
		}
	}
	return info
}

// Short returns a compact version string such as "1.2.0-a1b2c3d".
func Short() string {
	info := Get()
	if info.GitCommit == "" {
		return info.Version
	}
	if info.IsDirty {
		return fmt.Sprintf("%s-%s-dirty", info.Version, info.GitCommit)
	}
	return fmt.Sprintf("%s-%s", info.Version, info.GitCommit)
}
