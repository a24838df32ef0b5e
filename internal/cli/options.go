// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"phrp/internal/cliutil"
	"phrp/internal/version"

	"phrp-core/mass"
	"phrp-core/modification"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Input
	InputFiles []string // tab-delimited PSM files ('-' = stdin), processed in order

	// Configuration files
	ModDefsFile  string
	MassTagsFile string
	FastaFile    string

	// Resolution behavior
	MassPrecision  int
	ConsiderSymbol bool
	NoDupTerminus  bool // disallow duplicate terminus static mods
	NTermMass      float64
	CTermMass      float64
	MaxErrors      int

	// Output
	Output          string // text | jsonl | pretty
	ModSummaryFile  string
	ProteinModsFile string
	Header          bool // true unless --no-header
	Quiet           bool

	Version bool
}

// envDefault returns the PHRP_* environment value for key, or fallback.
// The environment is typically primed from a .env file by main.
func envDefault(key, fallback string) string {
	if v, ok := os.LookupEnv("PHRP_" + key); ok {
		return v
	}
	return fallback
}

func envDefaultFloat(key string, fallback float64) float64 {
	if v, ok := os.LookupEnv("PHRP_" + key); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: peptide hit results processor

Normalizes search-engine PSM files into synopsis rows with resolved
modifications and recomputed monoisotopic masses.

Version: %s

Usage of %s:
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	// Input
	var input string
	fs.StringVar(&input, "input", "", "tab-delimited PSM file ('-' = stdin; also accepted positionally) [*]")

	// Configuration files (.env: PHRP_MOD_DEFS, PHRP_MASS_TAGS, PHRP_FASTA)
	fs.StringVar(&opt.ModDefsFile, "mod-defs", envDefault("MOD_DEFS", ""), "modification definitions file (TSV) []")
	fs.StringVar(&opt.MassTagsFile, "mass-tags", envDefault("MASS_TAGS", ""), "mass correction tags file (TSV) []")
	fs.StringVar(&opt.FastaFile, "fasta", envDefault("FASTA", ""), "protein FASTA for peptide-to-protein mapping []")

	// Resolution behavior
	fs.IntVar(&opt.MassPrecision, "mass-precision", modification.DefaultMassDigitsOfPrecision, "decimal digits for modification mass matching [3]")
	fs.BoolVar(&opt.ConsiderSymbol, "consider-symbol", false, "include the symbol when merging equivalent modifications [false]")
	fs.BoolVar(&opt.NoDupTerminus, "no-duplicate-terminus-mods", true, "skip terminus static mods already present at the same position [true]")
	fs.Float64Var(&opt.NTermMass, "n-terminus-mass", envDefaultFloat("N_TERMINUS_MASS", mass.DefaultNTerminusMass), "peptide N-terminus mass addition [1.0078246]")
	fs.Float64Var(&opt.CTermMass, "c-terminus-mass", envDefaultFloat("C_TERMINUS_MASS", mass.DefaultCTerminusMass), "peptide C-terminus mass addition [17.0027387]")
	fs.IntVar(&opt.MaxErrors, "max-errors", 25, "row-level error messages retained in the log [25]")

	// Output
	fs.StringVar(&opt.Output, "output", "text", "output format: text | jsonl | pretty [text]")
	fs.StringVar(&opt.ModSummaryFile, "mod-summary", "", "write a modification summary TSV to this path []")
	fs.StringVar(&opt.ProteinModsFile, "protein-mods", "", "write protein modification detail TSV to this path (needs --fasta) []")
	noHeader := false
	fs.BoolVar(&noHeader, "no-header", false, "suppress header line in TSV output [false]")
	fs.BoolVar(&opt.Quiet, "quiet", false, "suppress warnings [false]")

	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	// Split & parse so input files may be given positionally.
	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	opt.Header = !noHeader

	if input != "" {
		opt.InputFiles = append(opt.InputFiles, input)
	}
	expanded, err := cliutil.ExpandPositionals(posArgs)
	if err != nil {
		return opt, err
	}
	opt.InputFiles = append(opt.InputFiles, expanded...)

	// Validation
	if len(opt.InputFiles) == 0 {
		return opt, errors.New("no input: pass --input or positional PSM files")
	}
	if opt.MassPrecision < 1 {
		return opt, errors.New("--mass-precision must be >= 1")
	}
	if opt.MaxErrors < 1 {
		return opt, errors.New("--max-errors must be >= 1")
	}
	switch opt.Output {
	case "text", "jsonl", "pretty":
	default:
		return opt, fmt.Errorf("invalid --output %q", opt.Output)
	}
	if opt.ProteinModsFile != "" && opt.FastaFile == "" {
		return opt, errors.New("--protein-mods requires --fasta")
	}
	return opt, nil
}
