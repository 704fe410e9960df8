package version

import (
	"runtime/debug"
	"strings"
	"testing"

	"namematch/internal/platform/testkit"
)

func TestInfo_Defaults(t *testing.T) {
	testkit.Swap(t, &readBuildInfo, func() (*debug.BuildInfo, bool) { return nil, false })

	got := Info()
	if got.Service != Service || got.Version != "dev" || got.Commit != "none" || got.Date != "unknown" {
		t.Fatalf("Info() = %+v", got)
	}
	if !strings.HasPrefix(got.GoVersion, "go") {
		t.Fatalf("GoVersion = %q", got.GoVersion)
	}
}

func TestInfo_VCSFallback(t *testing.T) {
	testkit.Swap(t, &readBuildInfo, func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "4f2a9c1e0b7d"}}}, true
	})
	if got := Info().Commit; got != "4f2a9c1" {
		t.Fatalf("Commit = %q, want 4f2a9c1", got)
	}
}

func TestBuildInfo_String(t *testing.T) {
	b := BuildInfo{Service: "namematch", Version: "v1", Commit: "abc", Date: "d", GoVersion: "go1"}
	if got := b.String(); got != "namematch v1 (abc, d, go1)" {
		t.Fatalf("String() = %q", got)
	}
}
