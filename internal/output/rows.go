// internal/output/rows.go
package output

import (
	"phrp/internal/pipeline"
	"phrp/pkg/api"

	"phrp-core/mass"
)

// ToAPIRow converts one resolved result to the stable wire schema (v1).
func ToAPIRow(res *pipeline.Result) api.SynopsisRowV1 {
	sr := res.PSM
	row := api.SynopsisRowV1{
		ResultID:         res.Row.ResultID,
		Scan:             res.Row.Scan,
		Charge:           res.Row.Charge,
		Peptide:          res.Peptide,
		CleanSequence:    sr.CleanSequence,
		PrefixResidue:    sr.PrefixResidues,
		SuffixResidue:    sr.SuffixResidues,
		MonoisotopicMass: sr.MonoisotopicMass,
		ModCount:         sr.ModificationCount(),
		ModDescription:   sr.ModificationDescription(),
		CleavageState:    sr.CleavageState.String(),
		TerminusState:    sr.PeptideTerminusState.String(),
		MissedCleavages:  sr.MissedCleavages,
		Protein:          res.Row.Protein,
	}
	if res.Row.Charge > 0 {
		row.MZ = mass.MassToMZ(sr.MonoisotopicMass, res.Row.Charge)
	}
	if res.Row.HasScore {
		row.Score = res.Row.Score
	}
	if row.Protein == "" && len(res.Locations) > 0 {
		row.Protein = res.Locations[0].Accession
	}
	return row
}

// ToProteinModRows expands one result into per-modification, per-protein-
// location detail rows. Whole-peptide modifications (position 0) are
// reported against the peptide start.
func ToProteinModRows(res *pipeline.Result) []api.ProteinModRowV1 {
	if len(res.PSM.Mods) == 0 || len(res.Locations) == 0 {
		return nil
	}
	rows := make([]api.ProteinModRowV1, 0, len(res.PSM.Mods)*len(res.Locations))
	for _, loc := range res.Locations {
		for _, m := range res.PSM.Mods {
			pos := m.Position
			if pos < 1 {
				pos = 1
			}
			rows = append(rows, api.ProteinModRowV1{
				ResultID:      res.Row.ResultID,
				Peptide:       res.PSM.CleanSequence,
				Protein:       loc.Accession,
				ResiduePos:    m.Position,
				ProteinPos:    loc.Start + pos - 1,
				Residue:       residueString(m.Residue),
				ModName:       m.Definition.MassCorrectionTag,
				ModMass:       m.Definition.Mass,
				TerminusState: m.TerminusState.String(),
				Resolved:      m.Resolved,
			})
		}
	}
	return rows
}

func residueString(r rune) string {
	if r == 0 {
		return ""
	}
	return string(r)
}
