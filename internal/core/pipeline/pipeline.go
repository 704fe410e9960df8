// Package pipeline wires the reconciliation stages together: decode the
// statement, load the customer files, normalize, extract, match and merge
package pipeline

import (
	"context"
	"strings"
	"time"

	"namematch/internal/adapters/csvio"
	"namematch/internal/adapters/document"
	"namematch/internal/core/extract"
	"namematch/internal/core/match"
	"namematch/internal/core/merge"
	"namematch/internal/core/normalize"
	"namematch/internal/core/registry"
	"namematch/internal/core/stoplist"
	perr "namematch/internal/platform/errors"
	"namematch/internal/platform/logger"
	"namematch/internal/platform/metrics"
	pstrings "namematch/internal/platform/strings"

	"github.com/google/uuid"
)

// Stage names used for metrics and logs
const (
	StageDecode    = "decode"
	StageLoad      = "load"
	StageIndex     = "index"
	StageNormalize = "normalize"
	StageExtract   = "extract"
	StageMatch     = "match"
	StageMerge     = "merge"
)

// Input is one reconciliation request. Details may be empty. ShowFiles asks
// for a preview of the customer files in the Result
type Input struct {
	Document     []byte
	DocumentName string
	Names        []byte
	Details      []byte
	Threshold    int
	ShowFiles    bool
}

// Preview file labels
const (
	NamesFile   = "names"
	DetailsFile = "details"
)

// Result is everything a run produced. Matches holds one entry per candidate;
// Merged holds accepted matches only
type Result struct {
	RunID         string              `json:"run_id"`
	Threshold     int                 `json:"threshold"`
	Scorer        string              `json:"scorer"`
	Pages         int                 `json:"pages"`
	Lines         int                 `json:"lines"`
	Registry      int                 `json:"registry_size"`
	Candidates    []extract.Candidate `json:"candidates"`
	Matches       []match.Result      `json:"matches"`
	Merged        []merge.Record      `json:"merged"`
	DetailColumns []string            `json:"detail_columns"`
	Preview       string              `json:"preview"`
	Files         []csvio.Preview     `json:"files,omitempty"`
	Elapsed       time.Duration       `json:"elapsed_ns"`
}

// Accepted returns the number of accepted matches
func (r *Result) Accepted() int {
	a, _ := match.Counts(r.Matches)
	return a
}

// Pipeline is safe for concurrent use; every Run is independent
type Pipeline struct {
	opt     Options
	doc     document.Extractor
	norm    *normalize.Normalizer
	ext     *extract.Extractor
	matcher *match.Matcher
	metrics *metrics.Metrics
}

// New validates opt and builds a Pipeline. m may be nil
func New(opt Options, m *metrics.Metrics) (*Pipeline, error) {
	if opt.PreviewRunes == 0 {
		opt.PreviewRunes = DefaultPreviewRunes
	}
	if opt.PreviewRows == 0 {
		opt.PreviewRows = DefaultPreviewRows
	}
	opt.Scorer = pstrings.Or(opt.Scorer, match.DefaultScorer)
	score, err := match.ParseScorer(opt.Scorer)
	if err != nil {
		return nil, err
	}

	stop := stoplist.Default()
	if len(opt.ExtraStopwords) > 0 {
		stop = stop.With(opt.ExtraStopwords...)
	}

	return &Pipeline{
		opt:     opt,
		doc:     document.Auto{},
		norm:    normalize.New(normalize.Options{MinLineLen: opt.MinLineLen}),
		ext:     extract.New(extract.Options{MaxTokens: opt.MaxTokens, Stoplist: stop}),
		matcher: match.New(match.Options{Scorer: score, Workers: opt.Workers}),
		metrics: m,
	}, nil
}

// WithDocument swaps the document extractor, mainly for tests
func (p *Pipeline) WithDocument(d document.Extractor) *Pipeline {
	c := *p
	c.doc = d
	return &c
}

// Options returns the options the pipeline was built with
func (p *Pipeline) Options() Options { return p.opt }

// Run executes the full pipeline on raw file bytes. Stages run in order and the
// first error aborts: threshold, document, names, details, index
func (p *Pipeline) Run(ctx context.Context, in Input) (res *Result, err error) {
	start := time.Now()
	res = p.newResult(ctx, in.Threshold)
	ctx = logger.WithRun(ctx, res.RunID)
	defer func() { p.finish(ctx, res, start, err) }()

	if err = match.ValidateThreshold(in.Threshold); err != nil {
		return nil, err
	}

	var pages []string
	if err = p.stage(ctx, StageDecode, func() (e error) {
		pages, e = p.doc.Pages(in.Document)
		return e
	}); err != nil {
		return nil, err
	}

	var (
		names   []string
		details *registry.DetailTable
	)
	if err = p.stage(ctx, StageLoad, func() (e error) {
		if names, e = csvio.LoadNameColumn(in.Names, p.opt.NameColumn); e != nil {
			return e
		}
		if len(in.Details) > 0 {
			details, e = csvio.LoadDetailTable(in.Details, p.opt.KeyColumn)
		}
		if e == nil && in.ShowFiles {
			res.Files, e = p.previews(in)
		}
		return e
	}); err != nil {
		return nil, err
	}

	if err = p.reconcile(ctx, res, pages, names, details, in.Threshold); err != nil {
		return nil, err
	}
	return res, nil
}

// RunText is the pipeline without any file decoding
func (p *Pipeline) RunText(ctx context.Context, pages, names []string, details *registry.DetailTable, threshold int) (res *Result, err error) {
	start := time.Now()
	res = p.newResult(ctx, threshold)
	ctx = logger.WithRun(ctx, res.RunID)
	defer func() { p.finish(ctx, res, start, err) }()

	if err = match.ValidateThreshold(threshold); err != nil {
		return nil, err
	}
	if err = p.reconcile(ctx, res, pages, names, details, threshold); err != nil {
		return nil, err
	}
	return res, nil
}

// previews heads the customer files; details only when given
func (p *Pipeline) previews(in Input) ([]csvio.Preview, error) {
	files := []struct {
		name string
		data []byte
	}{{NamesFile, in.Names}, {DetailsFile, in.Details}}

	out := make([]csvio.Preview, 0, len(files))
	for _, f := range files {
		if f.name == DetailsFile && len(f.data) == 0 {
			continue
		}
		pv, err := csvio.PreviewTable(f.name, f.data, p.opt.PreviewRows)
		if err != nil {
			return nil, err
		}
		out = append(out, pv)
	}
	return out, nil
}

// newResult reuses a run id already on ctx so callers can correlate responses
func (p *Pipeline) newResult(ctx context.Context, threshold int) *Result {
	id := logger.RunID(ctx)
	if id == "" {
		id = uuid.NewString()
	}
	return &Result{
		RunID:     id,
		Threshold: threshold,
		Scorer:    p.opt.Scorer,
	}
}

func (p *Pipeline) reconcile(ctx context.Context, res *Result, pages, names []string, details *registry.DetailTable, threshold int) error {
	res.Pages = len(pages)
	res.Preview = pstrings.Truncate(strings.Join(pages, "\n"), p.opt.PreviewRunes, "...")
	res.DetailColumns = details.Columns()
	if res.DetailColumns == nil {
		res.DetailColumns = []string{}
	}

	var idx *registry.Index
	if err := p.stage(ctx, StageIndex, func() (e error) {
		idx, e = registry.Build(names)
		return e
	}); err != nil {
		return err
	}
	res.Registry = idx.Len()
	logger.C(ctx).Debug().
		Int("entries", idx.Len()).
		Int("duplicates", idx.Duplicates()).
		Int("blanks", idx.Blanks()).
		Int("detail_duplicates", details.Duplicates()).
		Msg("registry indexed")

	var lines []normalize.Line
	if err := p.stage(ctx, StageNormalize, func() error {
		lines = p.norm.Lines(pages)
		return nil
	}); err != nil {
		return err
	}
	res.Lines = len(lines)

	if err := p.stage(ctx, StageExtract, func() error {
		res.Candidates = p.ext.ExtractLines(lines)
		return nil
	}); err != nil {
		return err
	}

	if err := p.stage(ctx, StageMatch, func() (e error) {
		res.Matches, e = p.matcher.Match(ctx, res.Candidates, idx, threshold)
		return e
	}); err != nil {
		return err
	}

	return p.stage(ctx, StageMerge, func() error {
		res.Merged = merge.MergeWith(res.Matches, details, merge.Options{OnePerCustomer: p.opt.OnePerCustomer})
		return nil
	})
}

// stage checks ctx, times fn and records it
func (p *Pipeline) stage(ctx context.Context, name string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t := time.Now()
	err := fn()
	d := time.Since(t)
	p.metrics.ObserveStage(name, d)

	ev := logger.C(ctx).Debug()
	if err != nil {
		ev = logger.C(ctx).Warn().Err(err)
	}
	ev.Str("stage", name).Dur("elapsed", d).Msg("pipeline stage")
	return err
}

func (p *Pipeline) finish(ctx context.Context, res *Result, start time.Time, err error) {
	d := time.Since(start)
	if err != nil {
		p.metrics.ObserveRun(perr.CodeOf(err).String(), d)
		ev := logger.C(ctx).Warn().Err(err).Dur("elapsed", d)
		if e, ok := perr.As(err); ok {
			ev = ev.Str("field", e.Field()).Str("op", e.Op())
		}
		ev.Msg("reconciliation failed")
		return
	}
	res.Elapsed = d
	accepted, rejected := match.Counts(res.Matches)
	p.metrics.AddCandidates(len(res.Candidates))
	p.metrics.AddMatches(accepted, rejected)
	p.metrics.ObserveRun(metrics.OutcomeOK, d)

	logger.C(ctx).Info().
		Int("pages", res.Pages).
		Int("lines", res.Lines).
		Int("registry", res.Registry).
		Int("candidates", len(res.Candidates)).
		Int("accepted", accepted).
		Int("merged", len(res.Merged)).
		Int("threshold", res.Threshold).
		Str("scorer", res.Scorer).
		Dur("elapsed", d).
		Msg("reconciliation complete")
}
