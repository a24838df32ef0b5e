// internal/output/modsummary.go
package output

import (
	"fmt"
	"io"

	"phrp-core/modification"
)

// ModSummaryHeader is the canonical header row for the mod-summary TSV.
const ModSummaryHeader = "symbol\tmass\ttarget_residues\tmod_type\tmass_correction_tag\toccurrence_count"

// WriteModSummary reports every registered modification definition with its
// run-wide occurrence count, in first-seen order.
func WriteModSummary(w io.Writer, reg *modification.Registry, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, ModSummaryHeader); err != nil {
			return err
		}
	}
	for _, def := range reg.Definitions() {
		_, err := fmt.Fprintf(w, "%c\t%.6f\t%s\t%c\t%s\t%d\n",
			def.Symbol, def.Mass, def.TargetResidues,
			def.Kind.Code(), def.MassCorrectionTag, def.OccurrenceCount)
		if err != nil {
			return err
		}
	}
	return nil
}
