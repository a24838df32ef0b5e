// cmd/phrp-mass/main.go
//
// phrp-mass is a small companion utility: it computes the monoisotopic mass
// (and m/z, when a charge is given) of clean peptide sequences passed as
// arguments or piped one per line on stdin.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"phrp/internal/appshell"
	"phrp/internal/cmdutil"
	"phrp/internal/version"

	"phrp-core/mass"
	"phrp-core/peptide"
)

func run(_ context.Context, argv []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("phrp-mass", flag.ContinueOnError)
	fs.SetOutput(stderr)
	charge := fs.Int("charge", 0, "charge state for m/z output (0 = neutral mass only) [0]")
	nTerm := fs.Float64("n-terminus-mass", mass.DefaultNTerminusMass, "peptide N-terminus mass addition [1.0078246]")
	cTerm := fs.Float64("c-terminus-mass", mass.DefaultCTerminusMass, "peptide C-terminus mass addition [17.0027387]")
	showVersion := fs.Bool("version", false, "print version and exit [false]")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), `phrp-mass: peptide monoisotopic mass calculator

Usage:
  phrp-mass [flags] PEPTIDE [PEPTIDE...]
  ... | phrp-mass [flags]

`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(argv); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if *showVersion {
		fmt.Fprintf(stdout, "phrp-mass version %s\n", version.Version)
		return 0
	}

	calc := mass.NewCalculator()
	calc.SetTerminusMasses(*nTerm, *cTerm)

	out := bufio.NewWriter(stdout)
	defer func() { _ = out.Flush() }()

	emitted := 0
	failed := false
	emit := func(raw string) {
		_, primary, _ := peptide.SplitPrefixAndSuffix(raw)
		clean := peptide.CleanSequence(primary)
		if clean == "" {
			cmdutil.Errorf(stderr, "no residues in %q", raw)
			failed = true
			return
		}
		m, err := calc.ComputeSequenceMass(clean, nil)
		if err != nil {
			cmdutil.Errorf(stderr, "%q: %v", raw, err)
			failed = true
			return
		}
		if *charge > 0 {
			fmt.Fprintf(out, "%s\t%.5f\t%.5f\n", clean, m, mass.MassToMZ(m, *charge))
		} else {
			fmt.Fprintf(out, "%s\t%.5f\n", clean, m)
		}
		emitted++
	}

	if fs.NArg() > 0 {
		for _, arg := range fs.Args() {
			emit(arg)
		}
	} else {
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			line := sc.Text()
			if line == "" {
				continue
			}
			emit(line)
		}
		if err := sc.Err(); err != nil {
			cmdutil.Errorf(stderr, "stdin: %v", err)
			return 3
		}
	}

	_ = out.Flush()
	switch {
	case failed:
		return 3
	case emitted == 0:
		return 1
	}
	return 0
}

func main() {
	appshell.Main(run)
}
