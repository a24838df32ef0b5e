// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"phrp/internal/cli"
	"phrp/internal/cmdutil"
	"phrp/internal/output"
	"phrp/internal/parser"
	"phrp/internal/pipeline"
	"phrp/internal/pretty"
	"phrp/internal/version"
	"phrp/internal/writers"
	"phrp/pkg/api"

	"phrp-core/mass"
	"phrp-core/modification"
	"phrp-core/protmap"
)

// RunContext wires the full processing run: parse flags, build the
// modification registry and calculator, optionally load a protein FASTA,
// then stream each PSM file through the resolution loop into the selected
// writer. All inputs share one registry, so modification symbols stay
// consistent across files.
// Exit codes: 0 ok, 1 no rows resolved, 2 usage error, 3 I/O error,
// 130 canceled.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("phrp")
	fs.SetOutput(io.Discard)

	usage := func(code int) int {
		fs.SetOutput(outw)
		fs.Usage()
		if err := outw.Flush(); writers.IsBrokenPipe(err) {
			return 0
		} else if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
		return code
	}

	if len(argv) == 0 {
		_, _ = cli.ParseArgs(fs, []string{"-h"})
		return usage(0)
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return usage(0)
		}
		_, _ = fmt.Fprintln(stderr, err)
		return usage(2)
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "phrp version %s\n", version.Version)
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 0
	}

	reg := modification.NewRegistry()
	reg.MassDigitsOfPrecision = opts.MassPrecision
	reg.ConsiderSymbolOnMatch = opts.ConsiderSymbol
	if opts.MassTagsFile != "" {
		if err := reg.Tags.LoadFile(opts.MassTagsFile); err != nil {
			cmdutil.Warnf(stderr, opts.Quiet, "%v; using built-in mass correction tags", err)
		}
	}
	if opts.ModDefsFile != "" {
		if err := reg.LoadFile(opts.ModDefsFile); err != nil {
			cmdutil.Warnf(stderr, opts.Quiet, "%v; starting with no predefined modifications", err)
		}
	}

	calc := mass.NewCalculator()
	calc.SetTerminusMasses(opts.NTermMass, opts.CTermMass)

	var mapper *protmap.Mapper
	if opts.FastaFile != "" {
		mapper, err = protmap.Load(parent, opts.FastaFile, 0)
		if err != nil {
			cmdutil.Errorf(stderr, "%v", err)
			return 3
		}
	}

	// One visitor serves every input file; sourceFile tracks the file the
	// current rows come from.
	sourceFile := ""
	var visit func(*pipeline.Result) error
	switch opts.Output {
	case "jsonl":
		jw := writers.NewJSONL[api.SynopsisRowV1](outw)
		visit = func(res *pipeline.Result) error {
			row := output.ToAPIRow(res)
			row.SourceFile = sourceFile
			return jw.Write(row)
		}
	case "pretty":
		visit = func(res *pipeline.Result) error {
			protein := res.Row.Protein
			if protein == "" && len(res.Locations) > 0 {
				protein = res.Locations[0].Accession
			}
			_, err := io.WriteString(outw, pretty.RenderResult(res.PSM, res.Row.Scan, res.Row.Charge, protein))
			return err
		}
	default:
		sw := output.NewSynopsisWriter(outw, opts.Header)
		visit = func(res *pipeline.Result) error {
			row := output.ToAPIRow(res)
			row.SourceFile = sourceFile
			return sw.Write(row)
		}
	}

	if opts.ProteinModsFile != "" {
		pf, err := os.Create(opts.ProteinModsFile)
		if err != nil {
			cmdutil.Errorf(stderr, "%v", err)
			return 3
		}
		pbuf := bufio.NewWriter(pf)
		defer func() {
			_ = pbuf.Flush()
			_ = pf.Close()
		}()
		pmw := output.NewProteinModsWriter(pbuf, opts.Header)
		base := visit
		visit = func(res *pipeline.Result) error {
			if err := base(res); err != nil {
				return err
			}
			return pmw.Write(output.ToProteinModRows(res))
		}
	}

	cfg := pipeline.Config{
		MaxDetailedErrors:             opts.MaxErrors,
		DisallowDuplicateTerminusMods: opts.NoDupTerminus,
	}
	deps := pipeline.Deps{Registry: reg, Calculator: calc, Mapper: mapper}

	var totals pipeline.Stats
	for _, inFile := range opts.InputFiles {
		var in io.ReadCloser
		if inFile == "-" {
			in = io.NopCloser(os.Stdin)
			sourceFile = ""
		} else {
			f, err := os.Open(inFile)
			if err != nil {
				cmdutil.Errorf(stderr, "%v", err)
				return 3
			}
			in = f
			sourceFile = filepath.Base(inFile)
		}

		rd, err := parser.NewReader(in)
		if err != nil {
			_ = in.Close()
			cmdutil.Errorf(stderr, "%s: %v", inFile, err)
			return 3
		}

		stats, runErr := pipeline.ForEachResult(parent, cfg, deps, rd, visit)
		_ = in.Close()

		totals.Rows += stats.Rows
		totals.Resolved += stats.Resolved
		totals.Failed += stats.Failed
		totals.Errors = append(totals.Errors, stats.Errors...)

		if writers.IsBrokenPipe(runErr) {
			return 0
		}
		if errors.Is(runErr, context.Canceled) || errors.Is(runErr, context.DeadlineExceeded) {
			return 130
		}
		if runErr != nil {
			cmdutil.Errorf(stderr, "%v", runErr)
			return 3
		}
	}

	if opts.ModSummaryFile != "" {
		mf, err := os.Create(opts.ModSummaryFile)
		if err != nil {
			cmdutil.Errorf(stderr, "%v", err)
			return 3
		}
		werr := output.WriteModSummary(mf, reg, opts.Header)
		if cerr := mf.Close(); werr == nil {
			werr = cerr
		}
		if werr != nil {
			cmdutil.Errorf(stderr, "%s: %v", opts.ModSummaryFile, werr)
			return 3
		}
	}

	for _, msg := range totals.Errors {
		cmdutil.Warnf(stderr, opts.Quiet, "%s", msg)
	}
	if extra := totals.Failed - len(totals.Errors); extra > 0 {
		cmdutil.Warnf(stderr, opts.Quiet, "... and %d more row errors", extra)
	}
	if totals.Failed > 0 {
		cmdutil.Warnf(stderr, opts.Quiet, "%d of %d rows skipped", totals.Failed, totals.Rows)
	}

	if err := outw.Flush(); writers.IsBrokenPipe(err) {
		return 0
	} else if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	if totals.Resolved == 0 {
		return 1
	}
	return 0
}

// Run is RunContext with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
