// core/modification/registry.go
package modification

import (
	"errors"

	"phrp-core/masstag"
	"phrp-core/peptide"
)

// ErrNoAvailableSymbols is returned by AddOrMerge when the symbol pool is
// exhausted. The definition is still registered under its default symbol;
// the caller decides whether that is worth warning about.
var ErrNoAvailableSymbols = errors.New("modification symbol pool exhausted")

// DefaultMassDigitsOfPrecision is the decimal precision used for mass
// equivalence unless the caller overrides it.
const DefaultMassDigitsOfPrecision = 3

// standardRefinement is the small fixed table of historically observed
// search-engine artifacts matched by exact residue when nothing else fits:
// pyroglutamate formation from Q and water loss from E.
var standardRefinement = []struct {
	mass    float64
	residue rune
	tag     string
}{
	{-17.026549, 'Q', "NH3_Loss"},
	{-18.010565, 'E', "MinusH2O"},
}

// Registry owns the set of known modification definitions, the pool of
// allocatable one-character symbols, and the mass-correction tag table.
// It is single-owner, single-thread state: symbol-allocation order is an
// observable part of output determinism, so one registry serves one run.
type Registry struct {
	Tags *masstag.Table

	defs        []*Definition
	symbolQueue []rune

	// MassDigitsOfPrecision controls the decimal tolerance of every mass
	// comparison made through this registry.
	MassDigitsOfPrecision int

	// ConsiderSymbolOnMatch widens the equivalence test to include the
	// symbol. Needed when one parameter file legitimately defines the same
	// mass on different residues under different symbols.
	ConsiderSymbolOnMatch bool
}

// NewRegistry returns a registry with default tags, a full symbol pool, and
// no definitions.
func NewRegistry() *Registry {
	r := &Registry{
		Tags:                  masstag.NewWithDefaults(),
		MassDigitsOfPrecision: DefaultMassDigitsOfPrecision,
	}
	r.resetSymbolQueue()
	return r
}

func (r *Registry) resetSymbolQueue() {
	r.symbolQueue = r.symbolQueue[:0]
	for _, c := range DefaultModificationSymbols {
		r.symbolQueue = append(r.symbolQueue, c)
	}
}

// SetDefaults clears all definitions and restores the full symbol pool.
// The built-in definition set is empty: without a definitions file every
// modification is learned from the data itself.
func (r *Registry) SetDefaults() {
	r.defs = r.defs[:0]
	r.resetSymbolQueue()
}

// Len reports the number of registered definitions.
func (r *Registry) Len() int { return len(r.defs) }

// Definition returns the definition at index i (insertion order).
func (r *Registry) Definition(i int) *Definition { return r.defs[i] }

// Definitions returns the definitions in first-seen order. The slice is
// shared; callers must not mutate it.
func (r *Registry) Definitions() []*Definition { return r.defs }

// AvailableSymbols reports how many symbols remain allocatable.
func (r *Registry) AvailableSymbols() int { return len(r.symbolQueue) }

// retireSymbol removes sym from the allocatable pool so that symbols taken
// by a definitions file can never be handed out a second time.
func (r *Registry) retireSymbol(sym rune) {
	for i, c := range r.symbolQueue {
		if c == sym {
			r.symbolQueue = append(r.symbolQueue[:i], r.symbolQueue[i+1:]...)
			return
		}
	}
}

// resolveTag fills in the mass-correction tag by mass when the definition
// still carries the unknown sentinel, so equivalence tests compare real tags.
func (r *Registry) resolveTag(def *Definition) {
	if def.MassCorrectionTag != masstag.UnknownTag && def.MassCorrectionTag != "" {
		return
	}
	if name, _ := r.Tags.LookupOrCreate(def.Mass, r.MassDigitsOfPrecision, true); name != "" {
		def.MassCorrectionTag = name
	}
}

// AddOrMerge registers def, merging it into a structurally equivalent
// existing definition when one exists. On a merge of a Dynamic or Static
// definition the target-residue sets are unioned (order-preserving) so that
// several residues sharing one mass consolidate under one symbol; the index
// of the surviving definition is returned and no new symbol is consumed.
//
// Otherwise def is appended. With useNextSymbol the next pooled symbol is
// assigned; if the pool is empty def keeps its current symbol and
// ErrNoAvailableSymbols is returned alongside the valid index.
func (r *Registry) AddOrMerge(def *Definition, useNextSymbol bool) (int, error) {
	r.resolveTag(def)
	for i, existing := range r.defs {
		if !existing.EquivalentTo(def, r.MassDigitsOfPrecision, r.ConsiderSymbolOnMatch) {
			continue
		}
		if existing.Kind == Dynamic || existing.Kind == Static {
			existing.mergeTargets(def.TargetResidues)
		}
		return i, nil
	}
	if useNextSymbol {
		if len(r.symbolQueue) == 0 {
			r.defs = append(r.defs, def)
			return len(r.defs) - 1, ErrNoAvailableSymbols
		}
		def.Symbol = r.symbolQueue[0]
		r.symbolQueue = r.symbolQueue[1:]
	} else if def.Symbol != NoSymbol && def.Symbol != LastResortSymbol {
		// A preset symbol (definitions file, caller-chosen) is retired from
		// the pool so it can never be handed out a second time.
		r.retireSymbol(def.Symbol)
	}
	r.defs = append(r.defs, def)
	return len(r.defs) - 1, nil
}

// ResolveDynamicBySymbol resolves one modification symbol scanned out of a
// peptide string, given the residue it follows and that residue's terminus
// state. Three passes, each tried only when the previous found nothing:
//
//  1. targeted definitions (non-empty target set) whose symbol matches and
//     whose targets contain the residue or a consistent terminus sentinel;
//  2. untargeted definitions with a matching symbol;
//  3. any definition with a matching symbol, targets ignored.
//
// A miss returns an unregistered zero-mass placeholder (never nil) with
// found=false, so every symbol in the input still produces output.
func (r *Registry) ResolveDynamicBySymbol(symbol, residue rune, ts peptide.TerminusState) (*Definition, bool) {
	for _, d := range r.defs {
		if d.Symbol == symbol && d.TargetsResidue(residue, ts) {
			return d, true
		}
	}
	for _, d := range r.defs {
		if d.Symbol == symbol && d.TargetResidues == "" {
			return d, true
		}
	}
	for _, d := range r.defs {
		if d.Symbol == symbol {
			return d, true
		}
	}
	placeholder := NewDefinition(symbol, 0, string(residue), Dynamic)
	r.resolveTag(placeholder)
	return placeholder, false
}

// targetForResidue picks the target-residue string for a synthesized
// definition: the literal residue, or the matching terminus sentinel when
// the residue sits at a terminus.
func targetForResidue(residue rune, ts peptide.TerminusState) string {
	switch {
	case ts.AtProteinNTerminus():
		return string(NTerminalProtein)
	case ts.AtProteinCTerminus():
		return string(CTerminalProtein)
	case ts == peptide.PeptideNTerminus || ts == peptide.PeptideNAndCTerminus:
		return string(NTerminalPeptide)
	case ts == peptide.PeptideCTerminus:
		return string(CTerminalPeptide)
	case residue == 0:
		return ""
	default:
		return string(residue)
	}
}

// ResolveByMass resolves a literal mass delta embedded in a peptide string
// (e.g. "+79.966" inline). Matching precedence: residue/terminus-targeted
// definitions within tolerance, then untargeted definitions, then the
// standard refinement table, and finally a brand-new Dynamic definition
// carrying the last-resort symbol. The synthesized definition is registered
// through AddOrMerge when addIfUnknown is set, else returned unregistered.
func (r *Registry) ResolveByMass(mass float64, residue rune, ts peptide.TerminusState, precisionDigits int, addIfUnknown bool) *Definition {
	if precisionDigits < 1 {
		precisionDigits = 1
	}
	for _, d := range r.defs {
		if masstag.MassesMatch(d.Mass, mass, precisionDigits) && d.TargetsResidue(residue, ts) {
			return d
		}
	}
	for _, d := range r.defs {
		if masstag.MassesMatch(d.Mass, mass, precisionDigits) && d.TargetResidues == "" {
			return d
		}
	}
	for _, ref := range standardRefinement {
		if ref.residue == residue && masstag.MassesMatch(ref.mass, mass, precisionDigits) {
			def := NewDefinition(LastResortSymbol, ref.mass, string(ref.residue), Dynamic)
			def.MassCorrectionTag = ref.tag
			if addIfUnknown {
				i, _ := r.AddOrMerge(def, false)
				return r.defs[i]
			}
			return def
		}
	}
	def := NewDefinition(LastResortSymbol, mass, targetForResidue(residue, ts), Dynamic)
	r.resolveTag(def)
	if addIfUnknown {
		i, _ := r.AddOrMerge(def, false)
		return r.defs[i]
	}
	return def
}

// ResolveByMassAndKind is the kind-constrained variant of ResolveByMass,
// used for Static and terminus modifications where the default-symbol policy
// differs: synthesized definitions keep the no-symbol sentinel and never
// consume a pooled symbol.
func (r *Registry) ResolveByMassAndKind(mass float64, kind Kind, residue rune, ts peptide.TerminusState, precisionDigits int, addIfUnknown bool) *Definition {
	if precisionDigits < 1 {
		precisionDigits = 1
	}
	for _, d := range r.defs {
		if d.Kind == kind && masstag.MassesMatch(d.Mass, mass, precisionDigits) && d.TargetsResidue(residue, ts) {
			return d
		}
	}
	for _, d := range r.defs {
		if d.Kind == kind && masstag.MassesMatch(d.Mass, mass, precisionDigits) && d.TargetResidues == "" {
			return d
		}
	}
	def := NewDefinition(NoSymbol, mass, targetForResidue(residue, ts), kind)
	r.resolveTag(def)
	if addIfUnknown {
		i, _ := r.AddOrMerge(def, false)
		return r.defs[i]
	}
	return def
}
