// Package sampledata bundles a demo statement and customer files so the CLI and
// API can be tried without uploads
package sampledata

import (
	"embed"
)

// File names inside FS
const (
	StatementFile = "bank_statement.txt"
	NamesFile     = "customer_names.csv"
	DetailsFile   = "customer_details.csv"
)

//go:embed bank_statement.txt customer_names.csv customer_details.csv
var FS embed.FS

// Statement is a three-page text statement; pages are separated by form feeds
func Statement() []byte { return mustRead(StatementFile) }

// Names is the customer names file (column CustomerName)
func Names() []byte { return mustRead(NamesFile) }

// Details is the customer details file keyed by CustomerName
func Details() []byte { return mustRead(DetailsFile) }

func mustRead(name string) []byte {
	b, err := FS.ReadFile(name)
	if err != nil {
		panic("sampledata: " + err.Error())
	}
	return b
}
