// Package testkit holds small helpers shared by the package tests
package testkit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func recovered(fn func()) (v any) {
	defer func() { v = recover() }()
	fn()
	return nil
}

// MustPanic fails t unless fn panics
func MustPanic(t *testing.T, fn func()) {
	t.Helper()
	if recovered(fn) == nil {
		t.Fatal("expected a panic")
	}
}

// MustNotPanic fails t if fn panics
func MustNotPanic(t *testing.T, fn func()) {
	t.Helper()
	if v := recovered(fn); v != nil {
		t.Fatalf("unexpected panic: %v", v)
	}
}

// MustContain fails t unless out contains want. Long output is kept in a
// file under the test's temp dir instead of the failure message
func MustContain(t *testing.T, out, want string) {
	t.Helper()
	if strings.Contains(out, want) {
		return
	}
	if len(out) <= 512 {
		t.Fatalf("missing %q in:\n%s", want, out)
	}
	p := filepath.Join(t.TempDir(), "output.txt")
	_ = os.WriteFile(p, []byte(out), 0o600)
	t.Fatalf("missing %q; output (%d bytes) saved to %s", want, len(out), p)
}

// WriteFiles writes fixtures into one temp dir and returns their paths by name
func WriteFiles(t *testing.T, files map[string]string) map[string]string {
	t.Helper()
	dir := t.TempDir()
	paths := make(map[string]string, len(files))
	for name, body := range files {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
			t.Fatalf("fixture %s: %v", name, err)
		}
		paths[name] = p
	}
	return paths
}

// Swap sets *target to v until t ends
func Swap[T any](t *testing.T, target *T, v T) {
	t.Helper()
	old := *target
	*target = v
	t.Cleanup(func() { *target = old })
}
