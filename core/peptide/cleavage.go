// core/peptide/cleavage.go
package peptide

// CleavageState classifies how well the peptide boundaries agree with the
// cleavage rule (trypsin: after K/R, but not before P).
type CleavageState int

const (
	NonSpecific CleavageState = iota
	Partial
	Full
)

func (cs CleavageState) String() string {
	switch cs {
	case Full:
		return "full"
	case Partial:
		return "partial"
	default:
		return "non-specific"
	}
}

func isCleavageResidue(c byte) bool { return c == 'K' || c == 'R' }

// ComputeCleavageState classifies a clean peptide from its flanking
// residues. A protein terminus counts as a valid cleavage boundary.
func ComputeCleavageState(clean, prefix, suffix string) CleavageState {
	if clean == "" {
		return NonSpecific
	}
	nOK := false
	switch {
	case flankIsProteinTerminus(prefix) || prefix == "":
		nOK = true
	case isCleavageResidue(prefix[len(prefix)-1]) && clean[0] != 'P':
		nOK = true
	}
	cOK := false
	switch {
	case flankIsProteinTerminus(suffix) || suffix == "":
		cOK = true
	case isCleavageResidue(clean[len(clean)-1]) && suffix[0] != 'P':
		cOK = true
	}
	switch {
	case nOK && cOK:
		return Full
	case nOK || cOK:
		return Partial
	default:
		return NonSpecific
	}
}

// CountMissedCleavages counts internal K/R residues not followed by P.
// The terminal residue is a cleavage site, not a missed one.
func CountMissedCleavages(clean string) int {
	n := 0
	for i := 0; i+1 < len(clean); i++ {
		if isCleavageResidue(clean[i]) && clean[i+1] != 'P' {
			n++
		}
	}
	return n
}
