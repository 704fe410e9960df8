// Command namematch reconciles a bank statement against a customer list and
// writes the two CSV exports
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"namematch/internal/adapters/csvio"
	"namematch/internal/core/match"
	"namematch/internal/core/merge"
	"namematch/internal/core/pipeline"
	"namematch/internal/core/version"
	"namematch/internal/platform/config"
	perr "namematch/internal/platform/errors"
	"namematch/internal/platform/logger"
	"namematch/internal/sampledata"
)

// errUsage marks flag problems; main exits 2 for them
var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, errUsage) || errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type cliFlags struct {
	doc, names, details       string
	threshold, workers        int
	scorer, nameCol, keyCol   string
	outMatches, outMerged     string
	sorted, onePerCustomer    bool
	sample, preview, showVers bool
	showFiles                 bool
}

func parseFlags(args []string, stderr io.Writer, def pipeline.Options) (cliFlags, error) {
	var f cliFlags
	fs := flag.NewFlagSet("namematch", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.doc, "doc", "", "bank statement, PDF or text")
	fs.StringVar(&f.names, "names", "", "customer names CSV")
	fs.StringVar(&f.details, "details", "", "customer details CSV (optional)")
	fs.IntVar(&f.threshold, "threshold", def.Threshold, "acceptance threshold 0-100, inclusive")
	fs.StringVar(&f.scorer, "scorer", def.Scorer, "similarity scorer: ratio, token_sort, token_set, weighted")
	fs.IntVar(&f.workers, "workers", def.Workers, "match concurrency (>=1)")
	fs.StringVar(&f.nameCol, "name-column", def.NameColumn, "name column in the names CSV")
	fs.StringVar(&f.keyCol, "key-column", def.KeyColumn, "join column in the details CSV")
	fs.StringVar(&f.outMatches, "out-matches", csvio.MatchesFilename, "matches CSV path, '-' for stdout, empty to skip")
	fs.StringVar(&f.outMerged, "out-merged", csvio.MergedFilename, "merged CSV path, '-' for stdout, empty to skip")
	fs.BoolVar(&f.sorted, "sorted", false, "order the matches export by score")
	fs.BoolVar(&f.onePerCustomer, "one-per-customer", def.OnePerCustomer, "keep only the best candidate per customer in the merged export")
	fs.BoolVar(&f.sample, "sample", false, "use the bundled demo files for any input not given")
	fs.BoolVar(&f.preview, "preview", false, "print the start of the extracted text to stderr")
	fs.BoolVar(&f.showFiles, "show-files", false, "print the head of the customer files to stderr")
	fs.BoolVar(&f.showVers, "version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return f, err
	}
	if f.showVers {
		return f, nil
	}
	if !f.sample && (f.doc == "" || f.names == "") {
		fs.Usage()
		return f, fmt.Errorf("%w: -doc and -names are required unless -sample is set", errUsage)
	}
	if f.workers < 1 {
		return f, fmt.Errorf("%w: -workers must be >= 1", errUsage)
	}
	return f, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opt := pipeline.OptionsFromConfig(config.New())
	f, err := parseFlags(args, stderr, opt)
	if err != nil {
		return err
	}
	if f.showVers {
		_, err := fmt.Fprintln(stdout, version.Info().String())
		return err
	}

	opt.Scorer, opt.Workers = f.scorer, f.workers
	opt.NameColumn, opt.KeyColumn = f.nameCol, f.keyCol
	opt.OnePerCustomer = f.onePerCustomer
	p, err := pipeline.New(opt, nil)
	if err != nil {
		return err
	}

	in, err := loadInput(f)
	if err != nil {
		return err
	}
	in.ShowFiles = f.showFiles
	res, err := p.Run(ctx, in)
	if err != nil {
		if fe, ok := perr.As(err); ok && fe.Field() != "" {
			return fmt.Errorf("%s: %w", fe.Field(), err)
		}
		return err
	}

	matches := res.Matches
	if f.sorted {
		matches = match.SortByScore(matches)
	}
	if err := writeOut(f.outMatches, stdout, func(w io.Writer) error { return csvio.WriteMatches(w, matches) }); err != nil {
		return err
	}
	if err := writeOut(f.outMerged, stdout, func(w io.Writer) error {
		return csvio.WriteMerged(w, res.Merged, res.DetailColumns)
	}); err != nil {
		return err
	}

	for _, pv := range res.Files {
		if err := csvio.WritePreview(stderr, pv); err != nil {
			return err
		}
	}
	if f.preview {
		_, _ = fmt.Fprintf(stderr, "--- %s (first %d runes) ---\n%s\n---\n", in.DocumentName, opt.PreviewRunes, res.Preview)
	}
	_, _ = fmt.Fprintf(stderr, "%d candidates, %d accepted at threshold %d (%s), %d customers\n",
		len(res.Candidates), res.Accepted(), res.Threshold, res.Scorer, res.Registry)
	if len(res.DetailColumns) > 0 {
		if n := merge.Missing(res.Merged); n > 0 {
			_, _ = fmt.Fprintf(stderr, "%d merged rows have no detail record\n", n)
		}
	}

	logger.Named("cli").Debug().
		Str("run_id", res.RunID).
		Dur("elapsed", res.Elapsed).
		Msg("reconcile done")
	return nil
}

func loadInput(f cliFlags) (pipeline.Input, error) {
	in := pipeline.Input{Threshold: f.threshold, DocumentName: f.doc}
	if f.sample {
		in.Document, in.Names, in.Details = sampledata.Statement(), sampledata.Names(), sampledata.Details()
		in.DocumentName = sampledata.StatementFile
	}

	read := func(path string, dst *[]byte) error {
		if path == "" {
			return nil
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		*dst = b
		return nil
	}
	if err := read(f.doc, &in.Document); err != nil {
		return in, err
	}
	if f.doc != "" {
		in.DocumentName = f.doc
	}
	if err := read(f.names, &in.Names); err != nil {
		return in, err
	}
	return in, read(f.details, &in.Details)
}

// writeOut sends an export to path; "-" is stdout and "" skips it
func writeOut(path string, stdout io.Writer, write func(io.Writer) error) (err error) {
	switch path {
	case "":
		return nil
	case "-":
		return write(stdout)
	}
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := fh.Close(); err == nil {
			err = cerr
		}
	}()
	return write(fh)
}
