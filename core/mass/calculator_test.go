// core/mass/calculator_test.go
package mass

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestComputeSequenceMassRoundTrip(t *testing.T) {
	c := NewCalculator()
	c.SetTerminusMasses(1.0078246, 17.0027387)

	got, err := c.ComputeSequenceMass("PEPTIDE", nil)
	if err != nil {
		t.Fatal(err)
	}
	want := 18.0105633
	for _, r := range "PEPTIDE" {
		m, err := ResidueMass(r)
		if err != nil {
			t.Fatal(err)
		}
		want += m
	}
	if !almostEqual(got, want, 1e-4) {
		t.Fatalf("mass = %.6f, want %.6f", got, want)
	}
	// Sanity against the literature value for PEPTIDE.
	if !almostEqual(got, 799.3599, 1e-3) {
		t.Fatalf("PEPTIDE mass = %.4f, want ~799.3600", got)
	}
}

func TestComputeSequenceMassWithMods(t *testing.T) {
	c := NewCalculator()
	base, err := c.ComputeSequenceMass("PEPTIDE", nil)
	if err != nil {
		t.Fatal(err)
	}
	got, err := c.ComputeSequenceMass("PEPTIDE", []ResidueMod{
		{Position: 4, Mass: 79.966331},
		{Position: 0, Mass: 1.003355},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(got, base+79.966331+1.003355, 1e-9) {
		t.Fatalf("modified mass = %.6f", got)
	}
}

func TestUnknownResidue(t *testing.T) {
	c := NewCalculator()
	if _, err := c.ComputeSequenceMass("PEP1IDE", nil); err == nil {
		t.Fatalf("expected error for non-letter residue")
	}
}

func TestTerminusReconfigurationAppliesForward(t *testing.T) {
	c := NewCalculator()
	before, _ := c.ComputeSequenceMass("GG", nil)

	c.SetTerminusMasses(0, 0)
	after, _ := c.ComputeSequenceMass("GG", nil)

	if !almostEqual(before-after, DefaultNTerminusMass+DefaultCTerminusMass, 1e-9) {
		t.Fatalf("zero terminus masses must drop exactly the terminus contribution (%.6f vs %.6f)", before, after)
	}
}

func TestMassToMZ(t *testing.T) {
	m := 999.0
	for z := 1; z <= 3; z++ {
		want := (m + float64(z)*ProtonMass) / float64(z)
		if got := MassToMZ(m, z); !almostEqual(got, want, 1e-9) {
			t.Fatalf("z=%d: got %.6f want %.6f", z, got, want)
		}
	}
}

func TestConvoluteMassRoundTrip(t *testing.T) {
	neutral := 1500.75
	mz2 := MassToMZ(neutral, 2)
	if got := ConvoluteMass(mz2, 2, 0); !almostEqual(got, neutral, 1e-9) {
		t.Fatalf("back to neutral: got %.6f", got)
	}
	mz3 := ConvoluteMass(mz2, 2, 3)
	if got := MassToMZ(neutral, 3); !almostEqual(mz3, got, 1e-9) {
		t.Fatalf("2+ -> 3+: got %.6f want %.6f", mz3, got)
	}
}
