// Package version reports build metadata for the binaries.
package version

import (
	"runtime"
	"runtime/debug"
)

// Service is the product name reported by every binary
const Service = "namematch"

// BuildInfo holds version information about the build.
type BuildInfo struct {
	Service   string `json:"service"    example:"namematch"`
	Version   string `json:"version"    example:"v0.3.0"`
	Commit    string `json:"commit"     example:"4f2a9c1"`
	Date      string `json:"date"       example:"2026-10-19"`
	GoVersion string `json:"go_version" example:"go1.25.0"`
}

// Info returns the build information. version, commit and date are set with
// -ldflags "-X 'namematch/internal/core/version.version=v0.3.0'
// -X 'namematch/internal/core/version.commit=4f2a9c1' -X 'namematch/internal/core/version.date=2026-10-19'".
// Without ldflags the commit falls back to the vcs stamp the go tool embeds.
func Info() BuildInfo {
	c := commit
	if c == "none" {
		c = vcsRevision()
	}
	return BuildInfo{
		Service:   Service,
		Version:   version,
		Commit:    c,
		Date:      date,
		GoVersion: runtime.Version(),
	}
}

// String renders the version line printed by -version flags
func (b BuildInfo) String() string {
	return b.Service + " " + b.Version + " (" + b.Commit + ", " + b.Date + ", " + b.GoVersion + ")"
}

var readBuildInfo = debug.ReadBuildInfo

func vcsRevision() string {
	bi, ok := readBuildInfo()
	if !ok {
		return "none"
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" && s.Value != "" {
			if len(s.Value) > 7 {
				return s.Value[:7]
			}
			return s.Value
		}
	}
	return "none"
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
