// Package config reads runtime settings from environment variables. Bad values
// never stop the process: they are logged and the default is used, except for
// enums where a typo would silently change behavior
package config

import (
	"os"
	"slices"
	"strconv"
	"strings"

	"namematch/internal/platform/logger"
)

// Conf reads env vars under a prefix such as "CORE_MATCH_"
type Conf struct{ prefix string }

// New returns the unprefixed view
func New() Conf { return Conf{} }

// Prefix nests p under the current prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// lookup returns the trimmed value and the full variable name
func (c Conf) lookup(key string) (val, name string) {
	name = c.prefix + key
	return strings.TrimSpace(os.Getenv(name)), name
}

// may parses the value of key, falling back to def when it is unset or fails
// to parse; failures are logged with the variable name
func may[T any](c Conf, key string, def T, parse func(string) (T, error)) T {
	s, name := c.lookup(key)
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Err(err).Str("key", name).Str("value", s).Interface("default", def).
			Msg("unparseable setting; using default")
		return def
	}
	return v
}

// MayString returns the value or def
func (c Conf) MayString(key, def string) string {
	return may(c, key, def, func(s string) (string, error) { return s, nil })
}

// MayInt returns the integer value or def
func (c Conf) MayInt(key string, def int) int {
	return may(c, key, def, strconv.Atoi)
}

// MayIntRange is MayInt bounded to [lo,hi]; out of range values also fall back to def
func (c Conf) MayIntRange(key string, def, lo, hi int) int {
	v := c.MayInt(key, def)
	if v < lo || v > hi {
		_, name := c.lookup(key)
		logger.Get().Warn().Str("key", name).Int("value", v).Int("min", lo).Int("max", hi).
			Int("default", def).Msg("setting out of range; using default")
		return def
	}
	return v
}

// MayBool returns the strconv.ParseBool value or def
func (c Conf) MayBool(key string, def bool) bool {
	return may(c, key, def, strconv.ParseBool)
}

// MayCSV splits a comma separated value, dropping blanks; def when nothing remains
func (c Conf) MayCSV(key string, def []string) []string {
	out := may(c, key, []string(nil), func(s string) ([]string, error) {
		var parts []string
		for p := range strings.SplitSeq(s, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		return parts, nil
	})
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns the lowercased value when allowed lists it (case-insensitively)
// and def when unset. Any other value panics
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := strings.ToLower(c.MayString(key, def))
	if v == "" || slices.ContainsFunc(allowed, func(a string) bool { return strings.EqualFold(a, v) }) {
		return v
	}
	_, name := c.lookup(key)
	logger.Get().Panic().Str("key", name).Str("value", v).Strs("allowed", allowed).Msg("invalid enum value")
	return ""
}
