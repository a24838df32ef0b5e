// pkg/api/rows_v1.go
package api

// SynopsisRowV1 is the stable JSON/JSONL schema for one processed PSM.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type SynopsisRowV1 struct {
	ResultID         int     `json:"result_id"`
	Scan             int     `json:"scan"`
	Charge           int     `json:"charge"`
	Peptide          string  `json:"peptide"`
	CleanSequence    string  `json:"clean_sequence"`
	PrefixResidue    string  `json:"prefix_residue,omitempty"`
	SuffixResidue    string  `json:"suffix_residue,omitempty"`
	MonoisotopicMass float64 `json:"monoisotopic_mass"`
	MZ               float64 `json:"mz,omitempty"`
	ModCount         int     `json:"mod_count"`
	ModDescription   string  `json:"mod_description,omitempty"`
	CleavageState    string  `json:"cleavage_state"`
	TerminusState    string  `json:"terminus_state"`
	MissedCleavages  int     `json:"missed_cleavages"`
	Protein          string  `json:"protein,omitempty"`
	Score            float64 `json:"score,omitempty"`
	SourceFile       string  `json:"source_file,omitempty"`
}

// ProteinModRowV1 is the stable schema for per-modification protein detail
// rows (one row per resolved modification per protein location).
type ProteinModRowV1 struct {
	ResultID      int     `json:"result_id"`
	Peptide       string  `json:"peptide"`
	Protein       string  `json:"protein"`
	ResiduePos    int     `json:"residue_pos"` // within the peptide, 1-based
	ProteinPos    int     `json:"protein_pos"` // within the protein, 1-based
	Residue       string  `json:"residue"`
	ModName       string  `json:"mod_name"`
	ModMass       float64 `json:"mod_mass"`
	TerminusState string  `json:"terminus_state,omitempty"`
	Resolved      bool    `json:"resolved"`
}
