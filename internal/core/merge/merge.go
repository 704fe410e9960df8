// Package merge joins accepted matches with the customer detail table
package merge

import (
	"namematch/internal/core/match"
	"namematch/internal/core/registry"
)

// Record is one row of the reconciled table
type Record struct {
	Match     match.Result    `json:"match"`
	Detail    registry.Detail `json:"detail"`
	HasDetail bool            `json:"has_detail"`
}

// Values returns the detail values aligned with columns; missing details give blanks
func (r Record) Values(columns []string) []string {
	out := make([]string, len(columns))
	if r.HasDetail {
		copy(out, r.Detail.Values)
	}
	return out
}

// Options controls merging
type Options struct {
	// OnePerCustomer keeps only the highest-scoring accepted match per customer,
	// ordered by score then customer name
	OnePerCustomer bool
}

// Merge runs with default options
func Merge(results []match.Result, details *registry.DetailTable) []Record {
	return MergeWith(results, details, Options{})
}

// MergeWith keeps every accepted result, in input order, and attaches its detail
// row when one exists. Rejected results never appear. The result is never nil
func MergeWith(results []match.Result, details *registry.DetailTable, opt Options) []Record {
	accepted := match.Accepted(results)
	if opt.OnePerCustomer {
		accepted = onePerCustomer(accepted)
	}

	out := make([]Record, 0, len(accepted))
	for _, r := range accepted {
		rec := Record{Match: r}
		if d, ok := details.Lookup(r.Best.Name); ok {
			rec.Detail, rec.HasDetail = d, true
		}
		out = append(out, rec)
	}
	return out
}

func onePerCustomer(results []match.Result) []match.Result {
	sorted := match.SortByScore(results)
	seen := make(map[int]struct{}, len(sorted))
	out := sorted[:0]
	for _, r := range sorted {
		if _, ok := seen[r.Best.Pos]; ok {
			continue
		}
		seen[r.Best.Pos] = struct{}{}
		out = append(out, r)
	}
	return out
}

// Missing returns how many records have no detail row
func Missing(records []Record) int {
	n := 0
	for _, r := range records {
		if !r.HasDetail {
			n++
		}
	}
	return n
}
