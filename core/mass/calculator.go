// core/mass/calculator.go
// Package mass computes peptide monoisotopic masses from clean residue
// sequences plus resolved modification contributions.
package mass

import "fmt"

// Monoisotopic constants (Da).
const (
	// DefaultNTerminusMass is one hydrogen, the free peptide N terminus.
	DefaultNTerminusMass = 1.0078246
	// DefaultCTerminusMass is a hydroxyl, the free peptide C terminus.
	DefaultCTerminusMass = 17.0027387
	// ProtonMass is used for m/z and charge convolution.
	ProtonMass = 1.00727649
)

// residueMasses holds monoisotopic residue (chain) masses for A-Z.
// B and Z use the Asx/Glx averages, J and X the leucine value, U and O the
// selenocysteine and pyrrolysine values. A zero entry marks an invalid letter.
var residueMasses = [26]float64{
	'A' - 'A': 71.0371136,
	'B' - 'A': 114.5349350,
	'C' - 'A': 103.0091854,
	'D' - 'A': 115.0269428,
	'E' - 'A': 129.0425928,
	'F' - 'A': 147.0684136,
	'G' - 'A': 57.0214636,
	'H' - 'A': 137.0589116,
	'I' - 'A': 113.0840636,
	'J' - 'A': 113.0840636,
	'K' - 'A': 128.0949626,
	'L' - 'A': 113.0840636,
	'M' - 'A': 131.0404854,
	'N' - 'A': 114.0429272,
	'O' - 'A': 237.1477269,
	'P' - 'A': 97.0527636,
	'Q' - 'A': 128.0585772,
	'R' - 'A': 156.1011106,
	'S' - 'A': 87.0320282,
	'T' - 'A': 101.0476782,
	'U' - 'A': 150.9536355,
	'V' - 'A': 99.0684136,
	'W' - 'A': 186.0793126,
	'X' - 'A': 113.0840636,
	'Y' - 'A': 163.0633282,
	'Z' - 'A': 128.5505850,
}

// ResidueMass returns the monoisotopic chain mass of one residue letter.
func ResidueMass(c rune) (float64, error) {
	if c < 'A' || c > 'Z' || residueMasses[c-'A'] == 0 {
		return 0, fmt.Errorf("unknown residue %q", c)
	}
	return residueMasses[c-'A'], nil
}

// ResidueMod is one modification contribution to a peptide's mass.
// Position is informational here (1-based; 0 = whole-peptide); each entry
// contributes its mass exactly once regardless of sequence content.
type ResidueMod struct {
	Position     int
	Mass         float64
	AffectedAtom rune
}

// Calculator computes peptide monoisotopic masses. The terminus masses are
// mutable shared state: SetTerminusMasses takes effect for every subsequent
// call, never retroactively. A terminus mass of exactly 0 means that
// terminus contributes nothing.
type Calculator struct {
	nTerminusMass float64
	cTerminusMass float64
}

// NewCalculator returns a calculator with the free-peptide terminus defaults
// (H at the N terminus, OH at the C terminus).
func NewCalculator() *Calculator {
	return &Calculator{
		nTerminusMass: DefaultNTerminusMass,
		cTerminusMass: DefaultCTerminusMass,
	}
}

// TerminusMasses reports the currently configured terminus contributions.
func (c *Calculator) TerminusMasses() (nTerm, cTerm float64) {
	return c.nTerminusMass, c.cTerminusMass
}

// SetTerminusMasses reconfigures the terminus contributions. Legal
// mid-batch; applies to subsequent ComputeSequenceMass calls only.
func (c *Calculator) SetTerminusMasses(nTerm, cTerm float64) {
	c.nTerminusMass = nTerm
	c.cTerminusMass = cTerm
}

// ComputeSequenceMass sums the residue reference masses of cleanSeq, each
// modification's mass once, and the currently configured terminus masses.
func (c *Calculator) ComputeSequenceMass(cleanSeq string, mods []ResidueMod) (float64, error) {
	total := c.nTerminusMass + c.cTerminusMass
	for _, r := range cleanSeq {
		m, err := ResidueMass(r)
		if err != nil {
			return 0, fmt.Errorf("sequence %q: %w", cleanSeq, err)
		}
		total += m
	}
	for _, mod := range mods {
		total += mod.Mass
	}
	return total, nil
}

// MassToMZ converts a neutral monoisotopic mass to m/z at the given charge.
func MassToMZ(mass float64, charge int) float64 {
	if charge <= 0 {
		return mass
	}
	return (mass + float64(charge)*ProtonMass) / float64(charge)
}

// ConvoluteMass converts an m/z observed at currentCharge to the m/z at
// desiredCharge. currentCharge 0 means mz is already a neutral mass;
// desiredCharge 0 returns the neutral mass.
func ConvoluteMass(mz float64, currentCharge, desiredCharge int) float64 {
	neutral := mz
	if currentCharge > 0 {
		neutral = mz*float64(currentCharge) - float64(currentCharge)*ProtonMass
	}
	if desiredCharge <= 0 {
		return neutral
	}
	return MassToMZ(neutral, desiredCharge)
}
