// Package extract finds candidate person and entity names in normalized
// statement lines. A candidate is a run of two or more adjacent name tokens
// (see IsNameToken) that does not cross clause punctuation
package extract

import (
	"strings"
	"unicode/utf8"

	"namematch/internal/core/normalize"
	"namematch/internal/core/stoplist"
)

// DefaultMaxTokens caps a candidate at four tokens (given names, surname, suffix)
const DefaultMaxTokens = 4

// Candidate is a name-like span found in the document.
// Name keeps the document's casing; Key is the comparison form
type Candidate struct {
	Name string `json:"name"`
	Key  string `json:"-"`
	Page int    `json:"page"`
	Line int    `json:"line"`
}

// Options controls extraction
type Options struct {
	// MaxTokens splits longer runs into consecutive windows; < 2 means DefaultMaxTokens
	MaxTokens int
	// Stoplist defaults to stoplist.Default()
	Stoplist *stoplist.List
}

// Extractor is stateless after construction and safe for concurrent use
type Extractor struct {
	maxTokens int
	stop      *stoplist.List
}

// New constructs an Extractor
func New(opt Options) *Extractor {
	if opt.MaxTokens < 2 {
		opt.MaxTokens = DefaultMaxTokens
	}
	if opt.Stoplist == nil {
		opt.Stoplist = stoplist.Default()
	}
	return &Extractor{maxTokens: opt.MaxTokens, stop: opt.Stoplist}
}

// Extract runs the default extractor over plain lines (page 0, line = slice index)
func Extract(lines []string) []Candidate { return New(Options{}).Extract(lines) }

// ExtractLines runs the default extractor over normalized lines
func ExtractLines(lines []normalize.Line) []Candidate { return New(Options{}).ExtractLines(lines) }

// Extract is ExtractLines for lines without page positions
func (e *Extractor) Extract(lines []string) []Candidate {
	ls := make([]normalize.Line, len(lines))
	for i, l := range lines {
		ls[i] = normalize.Line{Index: i, Text: l}
	}
	return e.ExtractLines(ls)
}

// ExtractLines returns deduplicated candidates in first-seen order.
// Duplicates share a normalize.Key; the longest surface spelling wins while the
// first position is kept. The result is never nil
func (e *Extractor) ExtractLines(lines []normalize.Line) []Candidate {
	out := make([]Candidate, 0, len(lines))
	seen := make(map[string]int, len(lines))

	emit := func(words []string, at normalize.Line) {
		name := strings.Join(words, " ")
		key := normalize.Key(name)
		if key == "" {
			return
		}
		if i, ok := seen[key]; ok {
			if utf8.RuneCountInString(name) > utf8.RuneCountInString(out[i].Name) {
				out[i].Name = name
			}
			return
		}
		seen[key] = len(out)
		out = append(out, Candidate{Name: name, Key: key, Page: at.Page, Line: at.Index})
	}

	for _, ln := range lines {
		for _, run := range e.runs(ln.Text) {
			for _, w := range e.windows(run) {
				emit(w, ln)
			}
		}
	}
	return out
}

// runs groups the line's consecutive name tokens, splitting at clause boundaries
// and at any token that is not a name token
func (e *Extractor) runs(line string) [][]string {
	var (
		out [][]string
		cur []string
	)
	closeRun := func() {
		if len(cur) >= 2 {
			out = append(out, cur)
		}
		cur = nil
	}
	for _, t := range tokenize(line) {
		if t.brk {
			closeRun()
		}
		if !IsNameToken(t.text, e.stop) {
			closeRun()
			continue
		}
		cur = append(cur, t.text)
	}
	closeRun()
	return out
}

// windows cuts a run into consecutive chunks of at most maxTokens; a trailing
// single token cannot form a name on its own and is dropped
func (e *Extractor) windows(run []string) [][]string {
	if len(run) <= e.maxTokens {
		return [][]string{run}
	}
	var out [][]string
	for i := 0; i < len(run); i += e.maxTokens {
		end := min(i+e.maxTokens, len(run))
		if end-i >= 2 {
			out = append(out, run[i:end])
		}
	}
	return out
}
