package registry

import (
	"strings"

	perr "namematch/internal/platform/errors"

	"namematch/internal/core/normalize"
)

// Detail is one row of the customer details file. Values align with
// DetailTable.Columns (the key column itself is not repeated)
type Detail struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// DetailTable maps canonical customer names to their detail rows.
// A nil *DetailTable is an empty table
type DetailTable struct {
	keyColumn string
	columns   []string
	rows      map[string]Detail
	dups      int
}

// BuildDetails builds a table from a header and data rows. keyColumn is matched
// against the header case-insensitively after trimming; a missing key column is a
// validation error. Short rows are padded, long rows truncated, rows with a blank
// key skipped, and the first row per key wins
func BuildDetails(keyColumn string, header []string, rows [][]string) (*DetailTable, error) {
	keyIdx := ColumnIndex(header, keyColumn)
	if keyIdx < 0 {
		return nil, perr.WithField(
			perr.WithOp(perr.Validationf("details file is missing required column %q", keyColumn), "registry.BuildDetails"),
			keyColumn,
		)
	}

	t := &DetailTable{
		keyColumn: strings.TrimSpace(header[keyIdx]),
		columns:   make([]string, 0, len(header)-1),
		rows:      make(map[string]Detail, len(rows)),
	}
	for i, h := range header {
		if i != keyIdx {
			t.columns = append(t.columns, strings.TrimSpace(h))
		}
	}

	for _, row := range rows {
		if keyIdx >= len(row) {
			continue
		}
		name := normalize.Clean(row[keyIdx])
		key := normalize.Key(name)
		if key == "" {
			continue
		}
		if _, ok := t.rows[key]; ok {
			t.dups++
			continue
		}
		vals := make([]string, 0, len(t.columns))
		for i := range header {
			if i == keyIdx {
				continue
			}
			v := ""
			if i < len(row) {
				v = strings.TrimSpace(row[i])
			}
			vals = append(vals, v)
		}
		t.rows[key] = Detail{Name: name, Values: vals}
	}
	return t, nil
}

// ColumnIndex returns the index of col in header (trimmed, case-insensitive), or -1
func ColumnIndex(header []string, col string) int {
	col = strings.TrimSpace(col)
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), col) {
			return i
		}
	}
	return -1
}

// KeyColumn returns the header spelling of the key column
func (t *DetailTable) KeyColumn() string {
	if t == nil {
		return ""
	}
	return t.keyColumn
}

// Columns returns the detail column names in file order, key column excluded
func (t *DetailTable) Columns() []string {
	if t == nil {
		return nil
	}
	return t.columns
}

// Len returns the number of distinct keyed rows
func (t *DetailTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Duplicates returns how many rows were dropped because an earlier row had the same key
func (t *DetailTable) Duplicates() int {
	if t == nil {
		return 0
	}
	return t.dups
}

// Lookup returns the detail row for a canonical name
func (t *DetailTable) Lookup(name string) (Detail, bool) {
	if t == nil {
		return Detail{}, false
	}
	d, ok := t.rows[normalize.Key(name)]
	return d, ok
}

// Map returns the row as column -> value, handy for JSON
func (d Detail) Map(columns []string) map[string]string {
	m := make(map[string]string, len(columns))
	for i, c := range columns {
		if i < len(d.Values) {
			m[c] = d.Values[i]
		}
	}
	return m
}
