// core/peptide/split.go
// Package peptide classifies peptide sequences: flank splitting, terminus
// state, tryptic cleavage state, and missed-cleavage counting.
package peptide

import "strings"

// ProteinTerminusFlank marks a flanking position that sits at a protein
// terminus ("K.PEPTIDE.-" means the peptide ends the protein).
const ProteinTerminusFlank = '-'

// SplitPrefixAndSuffix splits "K.PEPT*IDE.R" into its flanking residues and
// the primary sequence (which may still carry modification symbols and
// inline mass deltas).
//
// A dot is treated as a flank separator only when the text outside it is
// short enough to be a flank (at most two characters). That keeps decimal
// points inside inline mass deltas ("PEPT+79.966IDE") from being mistaken
// for separators.
func SplitPrefixAndSuffix(seq string) (prefix, primary, suffix string) {
	first := strings.IndexByte(seq, '.')
	if first < 0 {
		return "", seq, ""
	}
	last := strings.LastIndexByte(seq, '.')

	const maxFlank = 2
	prefOK := first <= maxFlank
	sufOK := last >= len(seq)-1-maxFlank
	switch {
	case prefOK && sufOK && last > first:
		return seq[:first], seq[first+1 : last], seq[last+1:]
	case prefOK && (!sufOK || last == first):
		return seq[:first], seq[first+1:], ""
	case sufOK && (!prefOK || last == first):
		return "", seq[:last], seq[last+1:]
	default:
		return "", seq, ""
	}
}

// CleanSequence strips everything but residue letters from a primary
// sequence, uppercasing as it goes.
func CleanSequence(primary string) string {
	var b strings.Builder
	b.Grow(len(primary))
	for _, c := range primary {
		switch {
		case c >= 'A' && c <= 'Z':
			b.WriteRune(c)
		case c >= 'a' && c <= 'z':
			b.WriteRune(c - 'a' + 'A')
		}
	}
	return b.String()
}
