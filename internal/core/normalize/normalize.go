// Package normalize turns raw statement text into clean lines and builds the
// comparison key used to match names.
//
// Display pipeline (case preserved, what the extractor sees)
// 1 Sanitize controls, stray glyphs and invalid UTF-8
// 2 Unicode NFKC normalization
// 3 Remove format chars (ZWJ, ZWNJ, BOM)
// 4 Width fold fullwidth to ASCII
// 5 Split into lines, collapse whitespace runs, trim
// 6 Drop lines shorter than MinLineLen or without any letter
//
// Key pipeline (comparison only, never displayed)
// NFKD, strip combining marks, width fold, NFC, case fold, drop punctuation,
// collapse whitespace
package normalize

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// DefaultMinLineLen is the shortest line (in runes) kept by Lines
const DefaultMinLineLen = 2

// Line is one normalized, non-empty line of a document
type Line struct {
	Page  int    `json:"page"`  // 0-based page index
	Index int    `json:"index"` // 0-based line index within the page, before filtering
	Text  string `json:"text"`
}

// Options tunes the line filter
type Options struct {
	// MinLineLen drops lines with fewer runes; values < 1 fall back to DefaultMinLineLen
	MinLineLen int
}

// Normalizer is concurrency safe; transformer chains are pooled
type Normalizer struct {
	minLen int
}

// pools of fresh transformer chains; order matters and mirrors the package doc
var (
	displayPool = sync.Pool{
		New: func() any {
			return transform.Chain(
				norm.NFKC,
				runes.Remove(runes.In(unicode.Cf)), // ZWJ ZWNJ FEFF etc
				width.Fold,
			)
		},
	}
	keyPool = sync.Pool{
		New: func() any {
			return transform.Chain(
				norm.NFKD,
				runes.Remove(runes.In(unicode.Mn)), // accents split off by NFKD
				runes.Remove(runes.In(unicode.Cf)),
				width.Fold,
				norm.NFC,
				cases.Fold(),
			)
		},
	}
)

var std = New(Options{})

// New constructs a Normalizer
func New(opt Options) *Normalizer {
	if opt.MinLineLen < 1 {
		opt.MinLineLen = DefaultMinLineLen
	}
	return &Normalizer{minLen: opt.MinLineLen}
}

// Normalize returns the kept lines of all pages as plain strings using default options
func Normalize(raw []string) []string { return std.Normalize(raw) }

// Lines returns the kept lines of all pages with their positions using default options
func Lines(raw []string) []Line { return std.Lines(raw) }

// Key returns the comparison key for s
func Key(s string) string { return std.Key(s) }

// Clean returns s through the display pipeline flattened to a single line
func Clean(s string) string { return std.Clean(s) }

// Normalize is Lines without positions
func (n *Normalizer) Normalize(raw []string) []string {
	lines := n.Lines(raw)
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

// Lines normalizes every page and returns the surviving lines in document order.
// Empty input yields an empty (non-nil) slice
func (n *Normalizer) Lines(raw []string) []Line {
	out := make([]Line, 0, len(raw)*8)
	for p, page := range raw {
		if strings.TrimSpace(page) == "" {
			continue
		}
		for i, ln := range splitLines(page) {
			ln = display(ln)
			ln = collapseSpaces(ln)
			if !n.keep(ln) {
				continue
			}
			out = append(out, Line{Page: p, Index: i, Text: ln})
		}
	}
	return out
}

// Clean is the display pipeline on a single value (names from the registry CSV)
func (n *Normalizer) Clean(s string) string {
	if s == "" {
		return ""
	}
	return collapseSpaces(display(s))
}

// Key lowercases, strips accents and punctuation, and collapses whitespace.
// Two names with equal keys are the same name for matching purposes
func (n *Normalizer) Key(s string) string {
	if s == "" {
		return ""
	}
	s = Sanitize(s)

	tr := keyPool.Get().(transform.Transformer)
	ks, _, _ := transform.String(tr, s)
	tr.Reset()
	keyPool.Put(tr)

	return collapseSpaces(stripPunct(ks))
}

// keep reports whether a collapsed line is long enough and carries a letter
func (n *Normalizer) keep(ln string) bool {
	if utf8.RuneCountInString(ln) < n.minLen {
		return false
	}
	return strings.IndexFunc(ln, unicode.IsLetter) >= 0
}

// display runs Sanitize then the pooled display chain
func display(s string) string {
	s = Sanitize(s)
	tr := displayPool.Get().(transform.Transformer)
	ds, _, _ := transform.String(tr, s)
	tr.Reset()
	displayPool.Put(tr)
	return ds
}

// breaks maps every line terminator we accept onto \n; it runs before Sanitize,
// which would otherwise drop \f and \v and glue lines together
var breaks = strings.NewReplacer("\r\n", "\n", "\r", "\n", "\f", "\n", "\v", "\n", "\u2028", "\n", "\u2029", "\n")

// splitLines splits on \n, \r\n, lone \r, form feed and the unicode line/paragraph
// separators; blank lines are kept so indices match the source
func splitLines(s string) []string {
	return strings.Split(breaks.Replace(s), "\n")
}

// stripPunct drops punctuation and symbols, keeping letters, digits and whitespace
func stripPunct(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// collapseSpaces converts whitespace runs to a single ASCII space and trims the edges
func collapseSpaces(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			continue
		}
		if inWS && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inWS = false
		b.WriteRune(r)
	}
	return b.String()
}
