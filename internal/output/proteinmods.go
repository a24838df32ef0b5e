// internal/output/proteinmods.go
package output

import (
	"fmt"
	"io"

	"phrp/pkg/api"
)

// ProteinModsHeader is the canonical header row for the protein-mods TSV.
const ProteinModsHeader = "result_id\tpeptide\tprotein\tresidue_pos\tprotein_pos\tresidue\tmod_name\tmod_mass\tterminus_state\tresolved"

// ProteinModsWriter streams per-modification protein detail rows as TSV.
type ProteinModsWriter struct {
	w      io.Writer
	header bool
}

func NewProteinModsWriter(w io.Writer, header bool) *ProteinModsWriter {
	return &ProteinModsWriter{w: w, header: header}
}

func (pw *ProteinModsWriter) Write(rows []api.ProteinModRowV1) error {
	if len(rows) == 0 {
		return nil
	}
	if pw.header {
		if _, err := fmt.Fprintln(pw.w, ProteinModsHeader); err != nil {
			return err
		}
		pw.header = false
	}
	for _, r := range rows {
		_, err := fmt.Fprintf(pw.w, "%d\t%s\t%s\t%d\t%d\t%s\t%s\t%.6f\t%s\t%t\n",
			r.ResultID, r.Peptide, r.Protein,
			r.ResiduePos, r.ProteinPos, r.Residue,
			r.ModName, r.ModMass, r.TerminusState, r.Resolved)
		if err != nil {
			return err
		}
	}
	return nil
}
