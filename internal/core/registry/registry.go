// Package registry holds the per-run customer reference data: the index of
// canonical names the matcher scores against and the optional detail table
// the merger joins onto accepted matches
package registry

import (
	perr "namematch/internal/platform/errors"

	"namematch/internal/core/normalize"
)

// Entry is one canonical customer name. Pos is its 0-based position in the
// index and breaks score ties (earlier wins)
type Entry struct {
	Name string `json:"name"`
	Key  string `json:"-"`
	Pos  int    `json:"pos"`
}

// Index is an immutable, ordered, duplicate-free set of reference names
type Index struct {
	entries []Entry
	byKey   map[string]int
	dups    int
	blanks  int
}

// Build cleans names (display normalization, whitespace collapse), drops blanks and
// keeps the first occurrence of every normalize.Key. An index that ends up empty is a
// validation error: there is nothing to match against
func Build(names []string) (*Index, error) {
	idx := &Index{
		entries: make([]Entry, 0, len(names)),
		byKey:   make(map[string]int, len(names)),
	}
	for _, raw := range names {
		name := normalize.Clean(raw)
		key := normalize.Key(name)
		if key == "" {
			idx.blanks++
			continue
		}
		if _, ok := idx.byKey[key]; ok {
			idx.dups++
			continue
		}
		idx.byKey[key] = len(idx.entries)
		idx.entries = append(idx.entries, Entry{Name: name, Key: key, Pos: len(idx.entries)})
	}
	if len(idx.entries) == 0 {
		return nil, perr.WithOp(perr.Validationf("customer registry is empty after removing blank names"), "registry.Build")
	}
	return idx, nil
}

// Entries returns the entries in index order. Callers must not modify the slice
func (x *Index) Entries() []Entry { return x.entries }

// Len returns the number of distinct entries
func (x *Index) Len() int { return len(x.entries) }

// Duplicates returns how many input names were dropped as duplicates of an earlier one
func (x *Index) Duplicates() int { return x.dups }

// Blanks returns how many input names were dropped as empty
func (x *Index) Blanks() int { return x.blanks }

// Lookup finds the entry whose key equals normalize.Key(name)
func (x *Index) Lookup(name string) (Entry, bool) {
	i, ok := x.byKey[normalize.Key(name)]
	if !ok {
		return Entry{}, false
	}
	return x.entries[i], true
}
