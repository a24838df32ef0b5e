// core/peptide/terminus.go
package peptide

// TerminusState classifies where a peptide (or one residue of it) sits
// relative to the peptide and protein termini.
type TerminusState int

const (
	TerminusNone TerminusState = iota
	PeptideNTerminus
	PeptideCTerminus
	PeptideNAndCTerminus
	ProteinNTerminus
	ProteinCTerminus
	ProteinNAndCTerminus
)

func (ts TerminusState) String() string {
	switch ts {
	case PeptideNTerminus:
		return "peptide-N"
	case PeptideCTerminus:
		return "peptide-C"
	case PeptideNAndCTerminus:
		return "peptide-N&C"
	case ProteinNTerminus:
		return "protein-N"
	case ProteinCTerminus:
		return "protein-C"
	case ProteinNAndCTerminus:
		return "protein-N&C"
	default:
		return "none"
	}
}

// AtNTerminus reports whether ts denotes any N-terminal placement.
func (ts TerminusState) AtNTerminus() bool {
	return ts == PeptideNTerminus || ts == PeptideNAndCTerminus ||
		ts == ProteinNTerminus || ts == ProteinNAndCTerminus
}

// AtCTerminus reports whether ts denotes any C-terminal placement.
func (ts TerminusState) AtCTerminus() bool {
	return ts == PeptideCTerminus || ts == PeptideNAndCTerminus ||
		ts == ProteinCTerminus || ts == ProteinNAndCTerminus
}

// AtProteinNTerminus reports protein-level N-terminal placement.
func (ts TerminusState) AtProteinNTerminus() bool {
	return ts == ProteinNTerminus || ts == ProteinNAndCTerminus
}

// AtProteinCTerminus reports protein-level C-terminal placement.
func (ts TerminusState) AtProteinCTerminus() bool {
	return ts == ProteinCTerminus || ts == ProteinNAndCTerminus
}

// ComputePeptideTerminusState classifies a peptide from its flanking
// residues. A '-' flank places the peptide at the corresponding protein
// terminus.
func ComputePeptideTerminusState(prefix, suffix string) TerminusState {
	atN := flankIsProteinTerminus(prefix)
	atC := flankIsProteinTerminus(suffix)
	switch {
	case atN && atC:
		return ProteinNAndCTerminus
	case atN:
		return ProteinNTerminus
	case atC:
		return ProteinCTerminus
	default:
		return TerminusNone
	}
}

func flankIsProteinTerminus(flank string) bool {
	return flank != "" && flank[0] == ProteinTerminusFlank
}

// ComputeResidueTerminusState classifies residue `position` (1-based) of a
// peptide of `length` residues, given the peptide-level state. Interior
// residues are TerminusNone; terminal residues inherit the protein-level
// placement when the peptide sits at that protein terminus.
func ComputeResidueTerminusState(position, length int, peptideState TerminusState) TerminusState {
	if length <= 0 || position < 1 || position > length {
		return TerminusNone
	}
	atN := position == 1
	atC := position == length
	if !atN && !atC {
		return TerminusNone
	}
	protN := peptideState.AtProteinNTerminus()
	protC := peptideState.AtProteinCTerminus()
	switch {
	case atN && atC:
		// Single-residue peptide.
		switch {
		case protN && protC:
			return ProteinNAndCTerminus
		case protN:
			return ProteinNTerminus
		case protC:
			return ProteinCTerminus
		default:
			return PeptideNAndCTerminus
		}
	case atN:
		if protN {
			return ProteinNTerminus
		}
		return PeptideNTerminus
	default:
		if protC {
			return ProteinCTerminus
		}
		return PeptideCTerminus
	}
}
