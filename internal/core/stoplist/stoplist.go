// Package stoplist loads the embedded vocabulary of statement words that must never
// be read as part of a name (column headers, banking terms, months, titles)
package stoplist

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"namematch/internal/core/normalize"
)

//go:embed stoplist.json
var embedded []byte

// Version is the only stoplist.json schema version we understand
const Version = 1

type rawList struct {
	Version int                 `json:"version"`
	Meta    map[string]any      `json:"meta"`
	Groups  map[string][]string `json:"groups"`
}

// List is an immutable set of stop tokens keyed by normalize.Key.
// A nil *List contains nothing
type List struct {
	Version int
	Groups  []string // group names, sorted
	set     map[string]struct{}
}

var (
	defOnce sync.Once
	defList *List
)

// Load parses the embedded stoplist.json
func Load() (*List, error) { return Parse(embedded) }

// Default returns the embedded list, parsed once. It panics only if the embedded
// asset is corrupt, which the package tests guard against
func Default() *List {
	defOnce.Do(func() {
		l, err := Load()
		if err != nil {
			panic(err)
		}
		defList = l
	})
	return defList
}

// Parse builds a List from a stoplist.json document
func Parse(data []byte) (*List, error) {
	var rl rawList
	if err := json.Unmarshal(data, &rl); err != nil {
		return nil, fmt.Errorf("stoplist: parse stoplist.json: %w", err)
	}
	if rl.Version != Version {
		return nil, fmt.Errorf("stoplist: unsupported version %d (want %d)", rl.Version, Version)
	}

	l := &List{Version: rl.Version, set: make(map[string]struct{}, 256)}
	for g, words := range rl.Groups {
		l.Groups = append(l.Groups, g)
		for _, w := range words {
			l.add(w)
		}
	}
	sort.Strings(l.Groups)
	return l, nil
}

// Contains reports whether tok (any case, accents ignored) is a stop token
func (l *List) Contains(tok string) bool {
	if l == nil {
		return false
	}
	_, ok := l.set[normalize.Key(tok)]
	return ok
}

// Len returns the number of distinct stop keys
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.set)
}

// With returns a copy of l extended with extra tokens; l is left untouched
func (l *List) With(extra ...string) *List {
	out := &List{set: make(map[string]struct{}, l.Len()+len(extra))}
	if l != nil {
		out.Version = l.Version
		out.Groups = append(out.Groups, l.Groups...)
		for k := range l.set {
			out.set[k] = struct{}{}
		}
	}
	for _, w := range extra {
		out.add(w)
	}
	return out
}

func (l *List) add(w string) {
	if k := normalize.Key(w); k != "" {
		l.set[k] = struct{}{}
	}
}
