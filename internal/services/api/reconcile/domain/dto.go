// Package domain holds DTOs for reconcile http and service contracts
package domain

import (
	"namematch/internal/adapters/csvio"
	"namematch/internal/core/pipeline"
)

// Upload is a multipart reconciliation request after the files were read
type Upload struct {
	Document     []byte
	DocumentName string
	Names        []byte
	Details      []byte
	// Threshold nil means the configured default
	Threshold *int
	ShowFiles bool
}

// DetailsInput is the details table in JSON form
type DetailsInput struct {
	KeyColumn string     `json:"key_column,omitempty" validate:"omitempty,max=200" example:"CustomerName"`
	Columns   []string   `json:"columns" validate:"min=1,dive,nonblank,max=200" example:"CustomerName,Email"`
	Rows      [][]string `json:"rows"`
}

// TextInput reconciles already-extracted page text against a name list
type TextInput struct {
	Pages     []string      `json:"pages" validate:"dive,max=1048576"`
	Names     []string      `json:"names" validate:"min=1,dive,max=500"`
	Details   *DetailsInput `json:"details,omitempty"`
	Threshold *int          `json:"threshold,omitempty" validate:"omitempty,min=0,max=100" example:"85"`
}

// Candidate is one extracted name
type Candidate struct {
	Name string `json:"name" example:"Jon Smyth"`
	Page int    `json:"page" example:"0"`
	Line int    `json:"line" example:"12"`
}

// Match is one candidate with its closest customer. CustomerName is empty unless
// Accepted; BestName is always the closest entry
type Match struct {
	PDFName      string  `json:"pdf_name"      example:"Jon Smyth"`
	CustomerName string  `json:"customer_name" example:"John Smith"`
	BestName     string  `json:"best_name"     example:"John Smith"`
	Score        float64 `json:"score"         example:"84.21"`
	Accepted     bool    `json:"accepted"      example:"true"`
	Page         int     `json:"page"          example:"0"`
	Line         int     `json:"line"          example:"12"`
}

// Merged is one accepted match joined with its detail row
type Merged struct {
	PDFName      string            `json:"pdf_name"      example:"Jon Smyth"`
	CustomerName string            `json:"customer_name" example:"John Smith"`
	Score        float64           `json:"score"         example:"84.21"`
	HasDetail    bool              `json:"has_detail"    example:"true"`
	Details      map[string]string `json:"details"`
}

// FilePreview is the head of one uploaded customer file
type FilePreview struct {
	File   string     `json:"file"   example:"names"`
	Header []string   `json:"header" example:"CustomerName"`
	Rows   [][]string `json:"rows"`
	Total  int        `json:"total"  example:"10"`
}

// Report is the JSON view of a pipeline run
type Report struct {
	RunID         string        `json:"run_id"         example:"5b7c1f0e-3c3b-4b9f-9a53-0c5f0f3e2b11"`
	Threshold     int           `json:"threshold"      example:"85"`
	Scorer        string        `json:"scorer"         example:"token_sort"`
	Pages         int           `json:"pages"          example:"3"`
	Lines         int           `json:"lines"          example:"51"`
	RegistrySize  int           `json:"registry_size"  example:"10"`
	Accepted      int           `json:"accepted"       example:"7"`
	Candidates    []Candidate   `json:"candidates"`
	Matches       []Match       `json:"matches"`
	Merged        []Merged      `json:"merged"`
	DetailColumns []string      `json:"detail_columns"`
	Preview       string        `json:"preview,omitempty"`
	Files         []FilePreview `json:"files,omitempty"`
	ElapsedMS     int64         `json:"elapsed_ms"     example:"12"`
}

// NewReport maps a pipeline result; sorted orders matches by score then name
func NewReport(res *pipeline.Result, sorted bool) Report {
	rep := Report{
		RunID:         res.RunID,
		Threshold:     res.Threshold,
		Scorer:        res.Scorer,
		Pages:         res.Pages,
		Lines:         res.Lines,
		RegistrySize:  res.Registry,
		Accepted:      res.Accepted(),
		Candidates:    make([]Candidate, 0, len(res.Candidates)),
		Matches:       make([]Match, 0, len(res.Matches)),
		Merged:        make([]Merged, 0, len(res.Merged)),
		DetailColumns: res.DetailColumns,
		Preview:       res.Preview,
		ElapsedMS:     res.Elapsed.Milliseconds(),
	}
	for _, f := range res.Files {
		rep.Files = append(rep.Files, FilePreview{File: f.File, Header: f.Header, Rows: f.Rows, Total: f.Total})
	}
	for _, c := range res.Candidates {
		rep.Candidates = append(rep.Candidates, Candidate{Name: c.Name, Page: c.Page, Line: c.Line})
	}
	matches := res.Matches
	if sorted {
		matches = SortedMatches(res)
	}
	for _, m := range matches {
		rep.Matches = append(rep.Matches, Match{
			PDFName:      m.Candidate.Name,
			CustomerName: m.MatchedName(),
			BestName:     m.Best.Name,
			Score:        m.Score,
			Accepted:     m.Accepted,
			Page:         m.Candidate.Page,
			Line:         m.Candidate.Line,
		})
	}
	for _, r := range res.Merged {
		rep.Merged = append(rep.Merged, Merged{
			PDFName:      r.Match.Candidate.Name,
			CustomerName: r.Match.MatchedName(),
			Score:        r.Match.Score,
			HasDetail:    r.HasDetail,
			Details:      r.Detail.Map(res.DetailColumns),
		})
	}
	return rep
}

// Export file names and content type for CSV downloads
const (
	MatchesFilename = csvio.MatchesFilename
	MergedFilename  = csvio.MergedFilename
	CSVContentType  = "text/csv; charset=utf-8"
)
