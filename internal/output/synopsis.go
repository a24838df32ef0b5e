// internal/output/synopsis.go
package output

import (
	"fmt"
	"io"

	"phrp/pkg/api"
)

// SynopsisHeader is the canonical header row for the synopsis TSV.
// Keep this as the single source of truth; downstream consumers key on it.
const SynopsisHeader = "result_id\tscan\tcharge\tpeptide\tclean_sequence\tprefix\tsuffix\tmonoisotopic_mass\tmz\tmod_count\tmod_description\tcleavage_state\tterminus_state\tmissed_cleavages\tprotein\tscore\tsource_file"

// FormatSynopsisRowTSV renders the synopsis columns (no trailing newline).
// result_id restarts per input file; source_file keeps rows of a multi-file
// run distinguishable.
func FormatSynopsisRowTSV(r api.SynopsisRowV1) string {
	return fmt.Sprintf("%d\t%d\t%d\t%s\t%s\t%s\t%s\t%.5f\t%.5f\t%d\t%s\t%s\t%s\t%d\t%s\t%g\t%s",
		r.ResultID, r.Scan, r.Charge,
		r.Peptide, r.CleanSequence, r.PrefixResidue, r.SuffixResidue,
		r.MonoisotopicMass, r.MZ,
		r.ModCount, r.ModDescription,
		r.CleavageState, r.TerminusState, r.MissedCleavages,
		r.Protein, r.Score, r.SourceFile,
	)
}

// SynopsisWriter streams synopsis rows as TSV.
type SynopsisWriter struct {
	w      io.Writer
	header bool // header still pending
}

// NewSynopsisWriter returns a writer; with header set, the first row is
// preceded by SynopsisHeader.
func NewSynopsisWriter(w io.Writer, header bool) *SynopsisWriter {
	return &SynopsisWriter{w: w, header: header}
}

// Write emits one row (writing the header first if still pending).
func (sw *SynopsisWriter) Write(r api.SynopsisRowV1) error {
	if sw.header {
		if _, err := fmt.Fprintln(sw.w, SynopsisHeader); err != nil {
			return err
		}
		sw.header = false
	}
	_, err := fmt.Fprintln(sw.w, FormatSynopsisRowTSV(r))
	return err
}
