// internal/parser/delta.go
package parser

import (
	"strconv"
	"strings"

	"phrp-core/modification"
	"phrp-core/peptide"
)

func isResidueLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// NormalizeInlineDeltas rewrites inline numeric mass offsets in a peptide
// string ("K.PEPT+79.966IDE.R") into symbol form by resolving each delta
// through the registry. A delta that matches nothing registers a new dynamic
// definition and draws the next pooled symbol, so symbols are allocated
// first-seen-first across a batch.
//
// Already-symbolized sequences pass through untouched, so the rewrite is
// idempotent. A delta before the first residue is a prefix artifact and is
// dropped, matching how the sequence scan treats leading symbols.
//
// A delta that resolves to a static-family definition (no symbol of its own)
// vanishes from the rewrite: the residue and terminus passes attach those
// definitions by target, and embedding the no-symbol sentinel would make the
// scan attach the mass a second time.
//
// The returned error is ErrNoAvailableSymbols when the pool ran dry. The
// rewrite is then unusable for the affected delta (the last-resort symbol
// would alias every unknown mass to the first one) and callers must treat
// the row as failed.
func NormalizeInlineDeltas(raw string, reg *modification.Registry) (string, error) {
	if !strings.ContainsAny(raw, "0123456789") {
		return raw, nil
	}
	prefix, primary, suffix := peptide.SplitPrefixAndSuffix(raw)
	clean := peptide.CleanSequence(primary)
	pepState := peptide.ComputePeptideTerminusState(prefix, suffix)

	var b strings.Builder
	b.Grow(len(primary))
	var firstErr error
	position := 0
	var current rune

	for i := 0; i < len(primary); {
		c := primary[i]
		if isResidueLetter(c) {
			position++
			current = rune(c &^ 0x20) // uppercase
			b.WriteByte(c)
			i++
			continue
		}
		if (c == '+' || c == '-') && i+1 < len(primary) && primary[i+1] >= '0' && primary[i+1] <= '9' {
			j := i + 1
			for j < len(primary) && (primary[j] >= '0' && primary[j] <= '9' || primary[j] == '.') {
				j++
			}
			if mass, err := strconv.ParseFloat(primary[i:j], 64); err == nil {
				if position > 0 {
					ts := peptide.ComputeResidueTerminusState(position, len(clean), pepState)
					def := reg.ResolveByMass(mass, current, ts, reg.MassDigitsOfPrecision, false)
					if def.Symbol == modification.LastResortSymbol && def.Kind == modification.Dynamic {
						// Unknown delta: register it under the next pooled
						// symbol so distinct masses stay distinguishable in
						// the rewritten sequence.
						idx, err := reg.AddOrMerge(def, true)
						if err != nil && firstErr == nil {
							firstErr = err
						}
						def = reg.Definition(idx)
					}
					switch {
					case def.Kind != modification.Dynamic || def.Symbol == modification.NoSymbol:
						// Static-family match: attached by target in the
						// residue/terminus passes, so the delta just drops.
					case def.Symbol == modification.LastResortSymbol:
						// Pool exhausted: the shared last-resort symbol would
						// resolve to whichever definition claimed it first,
						// silently swapping this mass for another.
						if firstErr == nil {
							firstErr = modification.ErrNoAvailableSymbols
						}
					default:
						b.WriteRune(def.Symbol)
					}
				}
				i = j
				continue
			}
		}
		b.WriteByte(c)
		i++
	}

	primary = b.String()
	out := primary
	if prefix != "" || suffix != "" {
		out = prefix + "." + primary + "." + suffix
	}
	return out, firstErr
}
