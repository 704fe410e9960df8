package pipeline

import (
	"namematch/internal/adapters/csvio"
	"namematch/internal/core/extract"
	"namematch/internal/core/match"
	"namematch/internal/core/normalize"
	"namematch/internal/platform/config"
)

// Display defaults: document text kept in a Result, and rows kept per customer
// file preview
const (
	DefaultPreviewRunes = 5000
	DefaultPreviewRows  = 20
)

// Options configures a Pipeline. The zero value is usable
type Options struct {
	// Threshold is the default offered to callers (CLI flag, API form); Run always
	// uses the threshold passed with the Input
	Threshold int

	Scorer  string
	Workers int

	MinLineLen     int
	MaxTokens      int
	ExtraStopwords []string

	NameColumn string
	KeyColumn  string

	OnePerCustomer bool
	PreviewRunes   int
	PreviewRows    int
}

// DefaultOptions returns the built-in settings
func DefaultOptions() Options {
	return Options{
		Threshold:    match.DefaultThreshold,
		Scorer:       match.DefaultScorer,
		Workers:      1,
		MinLineLen:   normalize.DefaultMinLineLen,
		MaxTokens:    extract.DefaultMaxTokens,
		NameColumn:   csvio.DefaultColumn,
		KeyColumn:    csvio.DefaultColumn,
		PreviewRunes: DefaultPreviewRunes,
		PreviewRows:  DefaultPreviewRows,
	}
}

// OptionsFromConfig reads CORE_MATCH_*, CORE_EXTRACT_* and CORE_CSV_* below conf
func OptionsFromConfig(conf config.Conf) Options {
	o := DefaultOptions()

	mc := conf.Prefix("CORE_MATCH_")
	o.Threshold = mc.MayIntRange("THRESHOLD", o.Threshold, match.MinThreshold, match.MaxThreshold)
	o.Scorer = mc.MayEnum("SCORER", o.Scorer, match.ScorerNames()...)
	o.Workers = mc.MayIntRange("WORKERS", o.Workers, 1, 64)
	o.OnePerCustomer = mc.MayBool("ONE_PER_CUSTOMER", o.OnePerCustomer)

	ec := conf.Prefix("CORE_EXTRACT_")
	o.MinLineLen = ec.MayIntRange("MIN_LINE_LEN", o.MinLineLen, 1, 1000)
	o.MaxTokens = ec.MayIntRange("MAX_TOKENS", o.MaxTokens, 2, 16)
	o.ExtraStopwords = ec.MayCSV("EXTRA_STOPWORDS", nil)
	o.PreviewRunes = ec.MayInt("PREVIEW_RUNES", o.PreviewRunes)

	cc := conf.Prefix("CORE_CSV_")
	o.NameColumn = cc.MayString("NAME_COLUMN", o.NameColumn)
	o.KeyColumn = cc.MayString("KEY_COLUMN", o.KeyColumn)
	o.PreviewRows = cc.MayIntRange("PREVIEW_ROWS", o.PreviewRows, 1, 10000)
	return o
}
