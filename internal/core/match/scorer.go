package match

import (
	"math"
	"sort"
	"strings"

	perr "namematch/internal/platform/errors"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// Scorer compares two comparison keys and returns a similarity in [0,100]
type Scorer func(a, b string) float64

// Scorer names accepted by ParseScorer and the CORE_MATCH_SCORER setting
const (
	ScorerRatio     = "ratio"
	ScorerTokenSort = "token_sort"
	ScorerTokenSet  = "token_set"
	ScorerWeighted  = "weighted"
)

// DefaultScorer is the token-order-insensitive sorted-token ratio
const DefaultScorer = ScorerTokenSort

// ScorerNames lists the valid scorer names in a stable order
func ScorerNames() []string {
	return []string{ScorerRatio, ScorerTokenSort, ScorerTokenSet, ScorerWeighted}
}

var scorers = map[string]Scorer{
	ScorerRatio:     Ratio,
	ScorerTokenSort: TokenSort,
	ScorerTokenSet:  TokenSet,
	ScorerWeighted:  Weighted,
}

// ParseScorer resolves a scorer by name. Empty selects DefaultScorer
func ParseScorer(name string) (Scorer, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = DefaultScorer
	}
	s, ok := scorers[name]
	if !ok {
		return nil, perr.WithField(perr.InvalidArgf("unknown scorer %q (want one of %s)", name, strings.Join(ScorerNames(), ", ")), "scorer")
	}
	return s, nil
}

// Ratio is the indel-normalized Levenshtein similarity: substitutions cost two,
// so the score is 100 * (len(a)+len(b)-distance) / (len(a)+len(b))
func Ratio(a, b string) float64 {
	if a == b {
		return 100
	}
	ra, rb := []rune(a), []rune(b)
	if len(ra)+len(rb) == 0 {
		return 100
	}
	return 100 * levenshtein.RatioForStrings(ra, rb, levenshtein.DefaultOptions)
}

// TokenSort compares the keys after sorting their space-separated tokens
func TokenSort(a, b string) float64 {
	return Ratio(sortedTokens(a), sortedTokens(b))
}

// TokenSet scores the shared tokens against each side's full token set, so a
// candidate that is a token subset of a reference name scores 100
func TokenSet(a, b string) float64 {
	ta, tb := tokenSet(a), tokenSet(b)
	var common, onlyA, onlyB []string
	for t := range ta {
		if _, ok := tb[t]; ok {
			common = append(common, t)
		} else {
			onlyA = append(onlyA, t)
		}
	}
	for t := range tb {
		if _, ok := ta[t]; !ok {
			onlyB = append(onlyB, t)
		}
	}
	if len(common) == 0 {
		return TokenSort(a, b)
	}
	if len(onlyA) == 0 || len(onlyB) == 0 {
		return 100
	}
	sort.Strings(common)
	sort.Strings(onlyA)
	sort.Strings(onlyB)
	sect := strings.Join(common, " ")
	withA := sect + " " + strings.Join(onlyA, " ")
	withB := sect + " " + strings.Join(onlyB, " ")
	return max(Ratio(sect, withA), Ratio(sect, withB), Ratio(withA, withB))
}

// Weighted takes the best of Ratio, TokenSort and TokenSet
func Weighted(a, b string) float64 {
	return max(Ratio(a, b), TokenSort(a, b), TokenSet(a, b))
}

func sortedTokens(s string) string {
	f := strings.Fields(s)
	sort.Strings(f)
	return strings.Join(f, " ")
}

func tokenSet(s string) map[string]struct{} {
	f := strings.Fields(s)
	m := make(map[string]struct{}, len(f))
	for _, t := range f {
		m[t] = struct{}{}
	}
	return m
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
