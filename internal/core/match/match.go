// Package match scores extracted candidates against the customer registry and
// picks the best reference entry for each one
package match

import (
	"context"
	"sort"

	"namematch/internal/core/extract"
	"namematch/internal/core/registry"
	perr "namematch/internal/platform/errors"

	"golang.org/x/sync/errgroup"
)

// Threshold bounds (inclusive)
const (
	MinThreshold     = 0
	MaxThreshold     = 100
	DefaultThreshold = 85
)

// Result is the outcome for one candidate. Best and Score are reported even when
// Accepted is false so rejected candidates can be reviewed
type Result struct {
	Candidate extract.Candidate `json:"candidate"`
	Best      registry.Entry    `json:"best"`
	HasBest   bool              `json:"has_best"`
	Score     float64           `json:"score"`
	Accepted  bool              `json:"accepted"`
}

// MatchedName is the reference name for accepted results and "" otherwise
func (r Result) MatchedName() string {
	if !r.Accepted || !r.HasBest {
		return ""
	}
	return r.Best.Name
}

// Options configures a Matcher
type Options struct {
	// Scorer defaults to TokenSort
	Scorer Scorer
	// Workers > 1 scores candidates in parallel
	Workers int
}

// Matcher is safe for concurrent use
type Matcher struct {
	score   Scorer
	workers int
}

// New constructs a Matcher
func New(opt Options) *Matcher {
	if opt.Scorer == nil {
		opt.Scorer = TokenSort
	}
	if opt.Workers < 1 {
		opt.Workers = 1
	}
	return &Matcher{score: opt.Scorer, workers: opt.Workers}
}

// ValidateThreshold rejects thresholds outside [MinThreshold, MaxThreshold]
func ValidateThreshold(threshold int) error {
	if threshold < MinThreshold || threshold > MaxThreshold {
		return perr.WithField(perr.InvalidArgf("threshold %d out of range [%d,%d]", threshold, MinThreshold, MaxThreshold), "threshold")
	}
	return nil
}

// Match runs the default matcher sequentially
func Match(candidates []extract.Candidate, idx *registry.Index, threshold int) ([]Result, error) {
	return New(Options{}).Match(context.Background(), candidates, idx, threshold)
}

// Match returns exactly one Result per candidate, in candidate order
func (m *Matcher) Match(ctx context.Context, candidates []extract.Candidate, idx *registry.Index, threshold int) ([]Result, error) {
	if err := ValidateThreshold(threshold); err != nil {
		return nil, err
	}
	if idx == nil || idx.Len() == 0 {
		return nil, perr.WithOp(perr.Validationf("customer registry is empty"), "match.Match")
	}

	out := make([]Result, len(candidates))
	if m.workers == 1 || len(candidates) < 2 {
		for i, c := range candidates {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			out[i] = m.best(c, idx, threshold)
		}
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.workers)
	for i, c := range candidates {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = m.best(c, idx, threshold)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// best scans every entry; strictly-greater comparison keeps the earliest entry on ties
func (m *Matcher) best(c extract.Candidate, idx *registry.Index, threshold int) Result {
	res := Result{Candidate: c}
	for _, e := range idx.Entries() {
		s := round2(m.score(c.Key, e.Key))
		if !res.HasBest || s > res.Score {
			res.Best, res.Score, res.HasBest = e, s, true
		}
		if s == 100 {
			break
		}
	}
	res.Accepted = res.HasBest && res.Score >= float64(threshold)
	return res
}

// Accepted filters results to accepted ones, preserving order
func Accepted(results []Result) []Result {
	out := make([]Result, 0, len(results))
	for _, r := range results {
		if r.Accepted {
			out = append(out, r)
		}
	}
	return out
}

// Counts returns the number of accepted and rejected results
func Counts(results []Result) (accepted, rejected int) {
	for _, r := range results {
		if r.Accepted {
			accepted++
		} else {
			rejected++
		}
	}
	return accepted, rejected
}

// SortByScore returns a copy ordered by score descending, then matched customer
// name, then candidate name
func SortByScore(results []Result) []Result {
	out := append([]Result(nil), results...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Best.Name != b.Best.Name {
			return a.Best.Name < b.Best.Name
		}
		return a.Candidate.Name < b.Candidate.Name
	})
	return out
}
