// internal/pretty/pretty.go
//
// Package pretty renders one resolved PSM as a human-readable ASCII block:
// the peptide with its modification symbols, a caret track marking modified
// residues, and one summary line per modification. Meant for eyeballing a
// handful of rows, not for machine consumption.
package pretty

import (
	"fmt"
	"strings"

	"phrp-core/mass"
	"phrp-core/psm"
)

const linePrefix = "# "

// Options control the ASCII rendering.
type Options struct {
	ResolvedGlyph   string // default "^"
	UnresolvedGlyph string // default "?"
}

// DefaultOptions keeps the current look and feel.
var DefaultOptions = Options{
	ResolvedGlyph:   "^",
	UnresolvedGlyph: "?",
}

func (o Options) resolvedGlyph() string {
	if o.ResolvedGlyph != "" {
		return o.ResolvedGlyph
	}
	return DefaultOptions.ResolvedGlyph
}

func (o Options) unresolvedGlyph() string {
	if o.UnresolvedGlyph != "" {
		return o.UnresolvedGlyph
	}
	return DefaultOptions.UnresolvedGlyph
}

// RenderResultWithOptions prints the block for one resolved search result.
// scan/charge/protein are echoed on the first line; charge also selects
// whether an m/z is shown.
func RenderResultWithOptions(sr *psm.SearchResult, scan, charge int, protein string, opt Options) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%sscan=%d charge=%d", linePrefix, scan, charge)
	if protein != "" {
		fmt.Fprintf(&b, " protein=%s", protein)
	}
	b.WriteByte('\n')

	// Peptide as read (flanks and symbols), then the clean residues with a
	// caret track underneath marking modified positions.
	display := sr.SequenceWithMods
	if sr.PrefixResidues != "" || sr.SuffixResidues != "" {
		display = sr.PrefixResidues + "." + sr.SequenceWithMods + "." + sr.SuffixResidues
	}
	fmt.Fprintf(&b, "%s%s\n", linePrefix, display)
	fmt.Fprintf(&b, "%s%s\n", linePrefix, sr.CleanSequence)

	track := make([]byte, len(sr.CleanSequence))
	for i := range track {
		track[i] = ' '
	}
	marked := false
	for _, m := range sr.Mods {
		if m.Position < 1 || m.Position > len(track) {
			continue
		}
		glyph := opt.resolvedGlyph()
		if !m.Resolved {
			glyph = opt.unresolvedGlyph()
		}
		track[m.Position-1] = glyph[0]
		marked = true
	}
	if marked {
		fmt.Fprintf(&b, "%s%s\n", linePrefix, strings.TrimRight(string(track), " "))
	}

	for _, m := range sr.Mods {
		fmt.Fprintf(&b, "%s%s", linePrefix, m.Definition.MassCorrectionTag)
		if m.Position >= 1 {
			fmt.Fprintf(&b, ":%d", m.Position)
		}
		fmt.Fprintf(&b, " (%+.6f)", m.Definition.Mass)
		if m.Residue != 0 {
			fmt.Fprintf(&b, " on %c", m.Residue)
		}
		if !m.Resolved {
			b.WriteString(" UNRESOLVED")
		}
		b.WriteByte('\n')
	}

	fmt.Fprintf(&b, "%smass=%.5f", linePrefix, sr.MonoisotopicMass)
	if charge > 0 {
		fmt.Fprintf(&b, " mz=%.5f", mass.MassToMZ(sr.MonoisotopicMass, charge))
	}
	fmt.Fprintf(&b, " cleavage=%s terminus=%s missed=%d\n",
		sr.CleavageState, sr.PeptideTerminusState, sr.MissedCleavages)
	b.WriteString("#\n")
	return b.String()
}

// RenderResult uses DefaultOptions.
func RenderResult(sr *psm.SearchResult, scan, charge int, protein string) string {
	return RenderResultWithOptions(sr, scan, charge, protein, DefaultOptions)
}
