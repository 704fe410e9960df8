// Package raw reads bootstrap settings straight from the environment. The
// logger is configured from it, so it must not log or import the logger
package raw

import (
	"os"
	"slices"
	"strconv"
	"strings"
)

// Conf reads env vars under a prefix such as "LOG_"
type Conf struct{ prefix string }

// New returns the unprefixed view
func New() Conf { return Conf{} }

// Prefix nests p under the current prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// lookup returns the trimmed value; ok is false for unset or blank
func (c Conf) lookup(key string) (v string, ok bool) {
	v = strings.TrimSpace(os.Getenv(c.prefix + key))
	return v, v != ""
}

// Get returns the value or def
func (c Conf) Get(key, def string) string {
	if v, ok := c.lookup(key); ok {
		return v
	}
	return def
}

// GetBool accepts strconv booleans plus yes/no and on/off; anything else is def
func (c Conf) GetBool(key string, def bool) bool {
	v, ok := c.lookup(key)
	if !ok {
		return def
	}
	switch strings.ToLower(v) {
	case "yes", "on":
		return true
	case "no", "off":
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// GetInt returns def for unset, malformed or negative values
func (c Conf) GetInt(key string, def int) int {
	v, ok := c.lookup(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

// GetOneOf returns the lowercased value when allowed lists it, def otherwise.
// It never panics since nothing can report the problem yet
func (c Conf) GetOneOf(key, def string, allowed ...string) string {
	v := strings.ToLower(c.Get(key, def))
	if slices.Contains(allowed, v) {
		return v
	}
	return def
}
