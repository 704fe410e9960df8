package normalize

import (
	"strings"
	"unicode/utf8"
)

// junk reports whether r is noise left behind by PDF text extraction: C0
// controls other than \t \n \r, DEL, C1 controls, private use glyphs from
// unmapped font encodings and the replacement character
func junk(r rune) bool {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return false
	case r < 0x20, r == 0x7F:
		return true
	case r >= 0x80 && r <= 0x9F:
		return true
	case r >= 0xE000 && r <= 0xF8FF:
		return true
	case r == utf8.RuneError:
		return true
	}
	return false
}

// Sanitize drops junk runes and invalid UTF-8 bytes. Clean input, the common
// case for text statements, is returned without allocating
func Sanitize(s string) string {
	cut := -1
	for i, r := range s {
		// invalid bytes decode as RuneError too
		if junk(r) {
			cut = i
			break
		}
	}
	if cut < 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	b.WriteString(s[:cut])
	for _, r := range s[cut:] {
		if !junk(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
