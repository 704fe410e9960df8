package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"namematch/internal/core/stoplist"
)

// token is one whitespace/punctuation delimited piece of a line.
// brk marks a clause boundary right before this token
type token struct {
	text string
	brk  bool
}

// isJoiner reports whether r may appear inside a name token (O'Brien, Smith-Jones)
func isJoiner(r rune) bool {
	return r == '\'' || r == '’' || r == '-' || r == '‐'
}

// isClause reports whether r ends a name run: a name never spans a comma,
// a slash separated narration field or a bracketed aside
func isClause(r rune) bool {
	switch r {
	case ',', ';', ':', '/', '\\', '|', '(', ')', '[', ']', '{', '}', '<', '>',
		'.', '!', '?', '"', '“', '”', '«', '»':
		return true
	}
	return false
}

// isQuote reports whether r is a quote char that is trimmed from token edges
func isQuote(r rune) bool { return r == '\'' || r == '’' || r == '‘' || r == '`' }

// tokenize splits a normalized line into tokens, recording clause boundaries.
// Anything that is neither whitespace nor clause punctuation stays in the token,
// so digits and symbols make a token fail IsNameToken
func tokenize(line string) []token {
	out := make([]token, 0, 8)
	var cur strings.Builder
	pending := false // a clause boundary was seen since the last emitted token

	flush := func() {
		if cur.Len() == 0 {
			return
		}
		txt := strings.TrimFunc(cur.String(), isQuote)
		cur.Reset()
		if txt == "" {
			return
		}
		out = append(out, token{text: txt, brk: pending})
		pending = false
	}

	for _, r := range line {
		switch {
		case unicode.IsSpace(r):
			flush()
		case isClause(r):
			flush()
			pending = true
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return out
}

// IsNameToken reports whether tok can be part of a name: at least two runes,
// an upper-case first letter, only letters with single internal apostrophes or
// hyphens, and not a stoplisted statement word
func IsNameToken(tok string, stop *stoplist.List) bool {
	if utf8.RuneCountInString(tok) < 2 {
		return false
	}
	first, _ := utf8.DecodeRuneInString(tok)
	if !unicode.IsUpper(first) && !unicode.IsTitle(first) {
		return false
	}
	last, _ := utf8.DecodeLastRuneInString(tok)
	if !unicode.IsLetter(last) {
		return false
	}
	prevJoiner := false
	for _, r := range tok {
		switch {
		case unicode.IsLetter(r), unicode.Is(unicode.Mn, r):
			prevJoiner = false
		case isJoiner(r):
			if prevJoiner {
				return false
			}
			prevJoiner = true
		default:
			return false
		}
	}
	return !stop.Contains(tok)
}
