// Package csvio reads the customer CSV files and writes the reconciliation exports
package csvio

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"namematch/internal/core/match"
	"namematch/internal/core/merge"
	"namematch/internal/core/registry"
	perr "namematch/internal/platform/errors"
	pstrings "namematch/internal/platform/strings"
)

// DefaultColumn is the customer name column in both input files
const DefaultColumn = "CustomerName"

// Export headers
var (
	MatchesHeader = []string{"PDF Name", "CustomerName", "Best Match", "Match Score", "Accepted"}
	mergedPrefix  = []string{"PDF Name", "CustomerName", "Match Score"}
)

// Export file names offered for download
const (
	MatchesFilename = "matched_names.csv"
	MergedFilename  = "matched_customer_details.csv"
)

// ReadTable parses a CSV file into a trimmed header and its data rows. Ragged rows
// are allowed; a leading BOM is dropped. An empty file has no header
func ReadTable(data []byte) (header []string, rows [][]string, err error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	all, err := r.ReadAll()
	if err != nil {
		return nil, nil, perr.WithOp(perr.Wrap(err, perr.ErrorCodeValidation, "malformed CSV"), "csvio.ReadTable")
	}
	if len(all) == 0 {
		return nil, nil, nil
	}
	header = make([]string, len(all[0]))
	for i, h := range all[0] {
		if i == 0 {
			h = pstrings.TrimBOM(h)
		}
		header[i] = strings.TrimSpace(h)
	}
	return header, all[1:], nil
}

// LoadNameColumn returns the raw values of column (DefaultColumn when empty) in
// file order. A missing column is a validation error naming it
func LoadNameColumn(data []byte, column string) ([]string, error) {
	column = pstrings.Or(column, DefaultColumn)
	header, rows, err := ReadTable(data)
	if err != nil {
		return nil, err
	}
	col := registry.ColumnIndex(header, column)
	if col < 0 {
		return nil, perr.WithField(
			perr.WithOp(perr.Validationf("customer names file is missing required column %q", column), "csvio.LoadNameColumn"),
			column,
		)
	}
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		if col < len(row) {
			names = append(names, row[col])
		}
	}
	return names, nil
}

// LoadDetailTable parses the customer details file keyed by keyColumn
// (DefaultColumn when empty)
func LoadDetailTable(data []byte, keyColumn string) (*registry.DetailTable, error) {
	keyColumn = pstrings.Or(keyColumn, DefaultColumn)
	header, rows, err := ReadTable(data)
	if err != nil {
		return nil, err
	}
	return registry.BuildDetails(keyColumn, header, rows)
}

// Preview is the head of an input CSV for display. Total counts every data row,
// including those past Rows
type Preview struct {
	File   string     `json:"file"`
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
	Total  int        `json:"total"`
}

// PreviewTable reads data and keeps at most limit rows; limit <= 0 keeps all
func PreviewTable(file string, data []byte, limit int) (Preview, error) {
	header, rows, err := ReadTable(data)
	if err != nil {
		return Preview{}, perr.WithField(err, file)
	}
	p := Preview{File: file, Header: header, Total: len(rows)}
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	p.Rows = rows
	if p.Header == nil {
		p.Header = []string{}
	}
	if p.Rows == nil {
		p.Rows = [][]string{}
	}
	return p, nil
}

// WritePreview renders p as an aligned table followed by a row count
func WritePreview(w io.Writer, p Preview) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "%s\n", p.File)
	_, _ = fmt.Fprintln(tw, strings.Join(p.Header, "\t"))
	for _, r := range p.Rows {
		_, _ = fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	if len(p.Rows) < p.Total {
		_, _ = fmt.Fprintf(tw, "... %d of %d rows\n", len(p.Rows), p.Total)
	} else {
		_, _ = fmt.Fprintf(tw, "%d rows\n", p.Total)
	}
	return tw.Flush()
}

// FormatScore renders a score with two decimals
func FormatScore(s float64) string { return strconv.FormatFloat(s, 'f', 2, 64) }

// WriteMatches writes every match result, accepted or not. CustomerName is
// blank on rejected rows; Best Match always names the closest registry entry
func WriteMatches(w io.Writer, results []match.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(MatchesHeader); err != nil {
		return err
	}
	for _, r := range results {
		rec := []string{r.Candidate.Name, r.MatchedName(), r.Best.Name, FormatScore(r.Score), strconv.FormatBool(r.Accepted)}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// MergedHeader is the merged export header for the given detail columns
func MergedHeader(columns []string) []string {
	return append(append([]string(nil), mergedPrefix...), columns...)
}

// WriteMerged writes the reconciled table; records without details get blank cells
func WriteMerged(w io.Writer, records []merge.Record, columns []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(MergedHeader(columns)); err != nil {
		return err
	}
	for _, rec := range records {
		row := make([]string, 0, len(mergedPrefix)+len(columns))
		row = append(row, rec.Match.Candidate.Name, rec.Match.MatchedName(), FormatScore(rec.Match.Score))
		row = append(row, rec.Values(columns)...)
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
