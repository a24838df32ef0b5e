// core/modification/definition.go
// Package modification owns the registry of known peptide modifications and
// the matching rules that resolve symbols and numeric mass deltas found in
// search-engine peptide strings to canonical definitions.
package modification

import (
	"strings"

	"phrp-core/masstag"
	"phrp-core/peptide"
)

// Kind distinguishes how a modification applies.
type Kind int

const (
	Dynamic Kind = iota
	Static
	TerminalPeptideStatic
	IsotopicMod
	ProteinTerminusStatic
	UnknownKind
)

// One-letter kind codes used in modification definition files.
const (
	codeDynamic               = 'D'
	codeStatic                = 'S'
	codeTerminalPeptideStatic = 'T'
	codeIsotopic              = 'I'
	codeProteinTerminusStatic = 'P'
)

// KindFromCode maps a one-letter file code to a Kind. Unknown codes fall
// back to Dynamic.
func KindFromCode(c rune) Kind {
	switch c {
	case codeDynamic:
		return Dynamic
	case codeStatic:
		return Static
	case codeTerminalPeptideStatic:
		return TerminalPeptideStatic
	case codeIsotopic:
		return IsotopicMod
	case codeProteinTerminusStatic:
		return ProteinTerminusStatic
	default:
		return Dynamic
	}
}

// Code returns the one-letter file code for k.
func (k Kind) Code() rune {
	switch k {
	case Static:
		return codeStatic
	case TerminalPeptideStatic:
		return codeTerminalPeptideStatic
	case IsotopicMod:
		return codeIsotopic
	case ProteinTerminusStatic:
		return codeProteinTerminusStatic
	default:
		return codeDynamic
	}
}

func (k Kind) String() string {
	switch k {
	case Dynamic:
		return "dynamic"
	case Static:
		return "static"
	case TerminalPeptideStatic:
		return "peptide-terminus-static"
	case IsotopicMod:
		return "isotopic"
	case ProteinTerminusStatic:
		return "protein-terminus-static"
	default:
		return "unknown"
	}
}

// Reserved symbols and target-residue sentinels. The two permanent symbols
// are excluded from the allocatable pool: NoSymbol marks static and terminal
// mods, LastResortSymbol marks ad hoc dynamic mods created when a numeric
// delta matched nothing.
const (
	NoSymbol         = '-'
	LastResortSymbol = '_'
	NoAffectedAtom   = '-'

	NTerminalPeptide = '<'
	CTerminalPeptide = '>'
	NTerminalProtein = '['
	CTerminalProtein = ']'
)

// DefaultModificationSymbols is the fixed alphabet from which dynamic
// modification symbols are allocated, in FIFO order. Reproduce verbatim:
// downstream consumers parse these symbols out of synopsis files.
const DefaultModificationSymbols = "*#@$&!%~^`|?;:,+="

// Definition describes one modification. Definitions are owned by a
// Registry and handed out by pointer so OccurrenceCount aggregates across
// every peptide that references them.
type Definition struct {
	Symbol            rune
	Mass              float64
	TargetResidues    string // ordered set of residue letters and/or terminus sentinels; "" = any residue
	Kind              Kind
	MassCorrectionTag string
	AffectedAtom      rune // isotopic mods only
	OccurrenceCount   int
}

// NewDefinition returns a definition with the sentinel defaults filled in.
func NewDefinition(symbol rune, mass float64, targets string, kind Kind) *Definition {
	return &Definition{
		Symbol:            symbol,
		Mass:              mass,
		TargetResidues:    targets,
		Kind:              kind,
		MassCorrectionTag: masstag.UnknownTag,
		AffectedAtom:      NoAffectedAtom,
	}
}

// EquivalentTo reports whether other is structurally the same modification:
// same kind, mass-correction tag, affected atom, and mass within the decimal
// tolerance. Symbol participates only when considerSymbol is set; target
// residues never participate (residue sets get unioned on merge instead).
func (d *Definition) EquivalentTo(other *Definition, precisionDigits int, considerSymbol bool) bool {
	if d.Kind != other.Kind || d.AffectedAtom != other.AffectedAtom {
		return false
	}
	if d.MassCorrectionTag != other.MassCorrectionTag {
		return false
	}
	if considerSymbol && d.Symbol != other.Symbol {
		return false
	}
	return masstag.MassesMatch(d.Mass, other.Mass, precisionDigits)
}

// TargetsResidue reports whether d applies to the literal residue, or to a
// terminus sentinel consistent with the residue's terminus state.
//
// Cross-satisfaction: a peptide-terminus target is also satisfied by the
// matching protein-terminus state (a protein terminus is a peptide terminus
// too). The reverse does not hold: a protein-terminus target requires a
// protein-terminus state.
func (d *Definition) TargetsResidue(residue rune, ts peptide.TerminusState) bool {
	if d.TargetResidues == "" {
		return false
	}
	if strings.ContainsRune(d.TargetResidues, residue) {
		return true
	}
	for _, t := range d.TargetResidues {
		switch t {
		case NTerminalPeptide:
			if ts.AtNTerminus() {
				return true
			}
		case CTerminalPeptide:
			if ts.AtCTerminus() {
				return true
			}
		case NTerminalProtein:
			if ts.AtProteinNTerminus() {
				return true
			}
		case CTerminalProtein:
			if ts.AtProteinCTerminus() {
				return true
			}
		}
	}
	return false
}

// mergeTargets unions extra target residues into d, preserving order and
// dropping duplicates.
func (d *Definition) mergeTargets(targets string) {
	for _, c := range targets {
		if !strings.ContainsRune(d.TargetResidues, c) {
			d.TargetResidues += string(c)
		}
	}
}
