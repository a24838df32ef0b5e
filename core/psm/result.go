// core/psm/result.go
// Package psm accumulates one peptide-spectrum match: it resolves the
// modification symbols embedded in a peptide string against the registry,
// attaches static/isotopic/terminus modifications, and computes the final
// monoisotopic mass.
package psm

import (
	"fmt"
	"sort"
	"strings"

	"phrp-core/mass"
	"phrp-core/masstag"
	"phrp-core/modification"
	"phrp-core/peptide"
)

// ResolvedModification ties one modification occurrence to a residue of the
// peptide. Definition points into the registry (never a copy) so occurrence
// counts aggregate across all results of a run.
type ResolvedModification struct {
	Definition    *modification.Definition
	Residue       rune
	Position      int // 1-based within the clean sequence; 0 = whole peptide
	TerminusState peptide.TerminusState
	Resolved      bool // false when the symbol matched nothing and a placeholder was attached
}

// SearchResult accumulates one peptide hit. Collaborators are injected and
// shared across results; the result itself is cleared and reused row to row.
//
// The methods are meant to be called in a fixed order:
// SetPeptide, AddIsotopicModifications, AddDynamicAndStaticResidueMods,
// AddTerminusStaticMods, ComputeMonoisotopicMass.
type SearchResult struct {
	Registry   *modification.Registry
	Calculator *mass.Calculator

	SequenceWithMods string
	CleanSequence    string
	PrefixResidues   string
	SuffixResidues   string

	PeptideTerminusState peptide.TerminusState
	CleavageState        peptide.CleavageState
	MissedCleavages      int

	Mods []ResolvedModification

	MonoisotopicMass float64
}

// New returns a result bound to its collaborators.
func New(reg *modification.Registry, calc *mass.Calculator) *SearchResult {
	return &SearchResult{Registry: reg, Calculator: calc}
}

// Clear resets all per-row fields so the result can take the next row.
func (sr *SearchResult) Clear() {
	sr.SequenceWithMods = ""
	sr.CleanSequence = ""
	sr.PrefixResidues = ""
	sr.SuffixResidues = ""
	sr.PeptideTerminusState = peptide.TerminusNone
	sr.CleavageState = peptide.NonSpecific
	sr.MissedCleavages = 0
	sr.Mods = sr.Mods[:0]
	sr.MonoisotopicMass = 0
}

// SetPeptide takes the raw peptide string (with optional flanks and embedded
// modification symbols), splits and classifies it, and primes the result.
func (sr *SearchResult) SetPeptide(raw string) {
	prefix, primary, suffix := peptide.SplitPrefixAndSuffix(raw)
	sr.PrefixResidues = prefix
	sr.SuffixResidues = suffix
	sr.SequenceWithMods = primary
	sr.CleanSequence = peptide.CleanSequence(primary)
	sr.PeptideTerminusState = peptide.ComputePeptideTerminusState(prefix, suffix)
	sr.CleavageState = peptide.ComputeCleavageState(sr.CleanSequence, prefix, suffix)
	sr.MissedCleavages = peptide.CountMissedCleavages(sr.CleanSequence)
}

func (sr *SearchResult) attach(def *modification.Definition, residue rune, pos int, ts peptide.TerminusState, resolved, updateCount bool) {
	if updateCount {
		def.OccurrenceCount++
	}
	sr.Mods = append(sr.Mods, ResolvedModification{
		Definition:    def,
		Residue:       residue,
		Position:      pos,
		TerminusState: ts,
		Resolved:      resolved,
	})
}

// AddIsotopicModifications attaches every registered isotopic modification
// once, unconditionally: isotope labeling applies per peptide, not per
// residue.
func (sr *SearchResult) AddIsotopicModifications(updateCount bool) {
	for _, def := range sr.Registry.Definitions() {
		if def.Kind == modification.IsotopicMod {
			sr.attach(def, 0, 0, peptide.TerminusNone, true, updateCount)
		}
	}
}

// AddDynamicAndStaticResidueMods scans SequenceWithMods left to right.
//
// Letters advance the residue position and immediately pick up every static
// modification targeting that letter (registry order; a residue may stack
// several). A non-letter symbol resolves against the most recent letter; an
// unmatched symbol still attaches the zero-mass placeholder so the row is
// never silently short a modification. Symbols before the first residue are
// leading artifacts and are discarded.
func (sr *SearchResult) AddDynamicAndStaticResidueMods(updateCount bool) {
	length := len(sr.CleanSequence)
	position := 0
	var current rune

	for _, c := range sr.SequenceWithMods {
		if isLetter(c) {
			position++
			current = upper(c)
			for _, def := range sr.Registry.Definitions() {
				if def.Kind == modification.Static && strings.ContainsRune(def.TargetResidues, current) {
					ts := peptide.ComputeResidueTerminusState(position, length, sr.PeptideTerminusState)
					sr.attach(def, current, position, ts, true, updateCount)
				}
			}
			continue
		}
		if position == 0 {
			// Prefix artifact before any residue: not an error, just noise.
			continue
		}
		ts := peptide.ComputeResidueTerminusState(position, length, sr.PeptideTerminusState)
		def, found := sr.Registry.ResolveDynamicBySymbol(c, current, ts)
		sr.attach(def, current, position, ts, found, updateCount && found)
	}
}

// hasEquivalentModAt reports whether a modification with the same tag, or a
// mass within the registry tolerance, is already attached at position.
func (sr *SearchResult) hasEquivalentModAt(def *modification.Definition, position int) bool {
	for _, m := range sr.Mods {
		if m.Position != position {
			continue
		}
		if m.Definition.MassCorrectionTag == def.MassCorrectionTag {
			return true
		}
		if masstag.MassesMatch(m.Definition.Mass, def.Mass, sr.Registry.MassDigitsOfPrecision) {
			return true
		}
	}
	return false
}

// AddTerminusStaticMods attaches terminus static modifications. Peptide-
// terminus statics are always considered; protein-terminus statics only when
// the peptide actually sits at that protein terminus. With
// disallowDuplicates, a terminus static whose tag or mass is already present
// at the same residue position is skipped.
func (sr *SearchResult) AddTerminusStaticMods(disallowDuplicates, updateCount bool) {
	if sr.CleanSequence == "" {
		return
	}
	length := len(sr.CleanSequence)
	first := rune(sr.CleanSequence[0])
	last := rune(sr.CleanSequence[length-1])
	nState := peptide.ComputeResidueTerminusState(1, length, sr.PeptideTerminusState)
	cState := peptide.ComputeResidueTerminusState(length, length, sr.PeptideTerminusState)

	// A single residue sits at both peptide termini even when its state only
	// records a protein-level placement on one side. Upgrade the state used
	// for peptide-terminus statics so the opposite end is not suppressed;
	// protein-terminus statics keep the strict state.
	nPepState, cPepState := nState, cState
	if length == 1 {
		if !nPepState.AtNTerminus() {
			nPepState = peptide.PeptideNAndCTerminus
		}
		if !cPepState.AtCTerminus() {
			cPepState = peptide.PeptideNAndCTerminus
		}
	}

	consider := func(def *modification.Definition, residue rune, pos int, ts peptide.TerminusState) {
		if !def.TargetsResidue(residue, ts) {
			return
		}
		if disallowDuplicates && sr.hasEquivalentModAt(def, pos) {
			return
		}
		sr.attach(def, residue, pos, ts, true, updateCount)
	}

	for _, def := range sr.Registry.Definitions() {
		switch def.Kind {
		case modification.TerminalPeptideStatic:
			if strings.ContainsRune(def.TargetResidues, modification.NTerminalPeptide) {
				consider(def, first, 1, nPepState)
			}
			if strings.ContainsRune(def.TargetResidues, modification.CTerminalPeptide) {
				consider(def, last, length, cPepState)
			}
		case modification.ProteinTerminusStatic:
			if strings.ContainsRune(def.TargetResidues, modification.NTerminalProtein) && sr.PeptideTerminusState.AtProteinNTerminus() {
				consider(def, first, 1, nState)
			}
			if strings.ContainsRune(def.TargetResidues, modification.CTerminalProtein) && sr.PeptideTerminusState.AtProteinCTerminus() {
				consider(def, last, length, cState)
			}
		}
	}
}

// ComputeMonoisotopicMass recomputes the peptide mass from the clean
// sequence plus every attached modification.
func (sr *SearchResult) ComputeMonoisotopicMass() (float64, error) {
	mods := make([]mass.ResidueMod, 0, len(sr.Mods))
	for _, m := range sr.Mods {
		mods = append(mods, mass.ResidueMod{
			Position:     m.Position,
			Mass:         m.Definition.Mass,
			AffectedAtom: m.Definition.AffectedAtom,
		})
	}
	total, err := sr.Calculator.ComputeSequenceMass(sr.CleanSequence, mods)
	if err != nil {
		return 0, err
	}
	sr.MonoisotopicMass = total
	return total, nil
}

// ModificationCount reports how many modifications are attached.
func (sr *SearchResult) ModificationCount() int { return len(sr.Mods) }

// ModificationDescription renders the attached modifications as
// "tag:position" pairs, comma-separated, sorted by position with ties broken
// by tag name.
func (sr *SearchResult) ModificationDescription() string {
	if len(sr.Mods) == 0 {
		return ""
	}
	sorted := make([]ResolvedModification, len(sr.Mods))
	copy(sorted, sr.Mods)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Position != sorted[j].Position {
			return sorted[i].Position < sorted[j].Position
		}
		return sorted[i].Definition.MassCorrectionTag < sorted[j].Definition.MassCorrectionTag
	})
	parts := make([]string, len(sorted))
	for i, m := range sorted {
		parts[i] = fmt.Sprintf("%s:%d", m.Definition.MassCorrectionTag, m.Position)
	}
	return strings.Join(parts, ",")
}

func isLetter(c rune) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func upper(c rune) rune {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}
