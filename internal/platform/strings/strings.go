// Package strings provides small string helpers shared by adapters and modules
package strings

import (
	std "strings"
	"unicode/utf8"
)

// IfEmpty returns def if in is empty, otherwise returns in
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// Or returns def when s is blank, otherwise s trimmed
func Or(s, def string) string {
	if s = std.TrimSpace(s); s == "" {
		return def
	}
	return s
}

// MustPrefix normalizes and asserts a root path like /reconcile or /meta
// ensures a single leading slash and no trailing slash except for the root itself
// panics if the input is empty after trimming
func MustPrefix(s string) string {
	s = std.TrimSpace(s)
	s = "/" + std.Trim(s, " /")
	if s == "/" {
		panic("root path is required")
	}
	return s
}

// TrimBOM drops a leading UTF-8 byte order mark, common in spreadsheet exports
func TrimBOM(s string) string { return std.TrimPrefix(s, "\ufeff") }

// Truncate returns s cut to at most n runes with suffix appended when anything was dropped.
// n <= 0 disables truncation
func Truncate(s string, n int, suffix string) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	i, count := 0, 0
	for i = range s {
		if count == n {
			break
		}
		count++
	}
	return s[:i] + suffix
}
