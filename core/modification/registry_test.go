// core/modification/registry_test.go
package modification

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"phrp-core/peptide"
)

func TestAddOrMergeUnionsTargets(t *testing.T) {
	r := NewRegistry()

	i1, err := r.AddOrMerge(NewDefinition(NoSymbol, 15.9949, "M", Dynamic), true)
	if err != nil {
		t.Fatalf("first add: %v", err)
	}
	before := r.AvailableSymbols()

	i2, err := r.AddOrMerge(NewDefinition(NoSymbol, 15.9949, "C", Dynamic), true)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if i1 != i2 {
		t.Fatalf("expected merge into one definition, got indexes %d and %d", i1, i2)
	}
	if got := r.Definition(i1).TargetResidues; got != "MC" {
		t.Fatalf("target residues = %q, want union MC", got)
	}
	if r.AvailableSymbols() != before {
		t.Fatalf("merge consumed a second symbol")
	}
	if r.Definition(i1).Symbol != rune(DefaultModificationSymbols[0]) {
		t.Fatalf("symbol = %q, want first pooled symbol", r.Definition(i1).Symbol)
	}
}

func TestAddOrMergeIdempotentSymbolAllocation(t *testing.T) {
	r := NewRegistry()
	def := func() *Definition { return NewDefinition(NoSymbol, 79.966331, "S", Dynamic) }

	i1, _ := r.AddOrMerge(def(), true)
	pool := r.AvailableSymbols()
	i2, _ := r.AddOrMerge(def(), true)
	if i1 != i2 || r.AvailableSymbols() != pool {
		t.Fatalf("re-adding identical definition must be a no-op (i1=%d i2=%d pool %d->%d)",
			i1, i2, pool, r.AvailableSymbols())
	}
}

func TestAddOrMergeSymbolExhaustion(t *testing.T) {
	r := NewRegistry()
	n := r.AvailableSymbols()
	for i := 0; i < n; i++ {
		if _, err := r.AddOrMerge(NewDefinition(NoSymbol, 100+float64(i), "A", Dynamic), true); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}
	idx, err := r.AddOrMerge(NewDefinition(NoSymbol, 5000, "A", Dynamic), true)
	if !errors.Is(err, ErrNoAvailableSymbols) {
		t.Fatalf("expected ErrNoAvailableSymbols, got %v", err)
	}
	if idx != n {
		t.Fatalf("definition must still be registered, idx=%d", idx)
	}
	if r.Definition(idx).Symbol != NoSymbol {
		t.Fatalf("exhausted pool must leave the default symbol, got %q", r.Definition(idx).Symbol)
	}
}

func TestStaticKindsDoNotMergeTargetsAcrossKinds(t *testing.T) {
	r := NewRegistry()
	i1, _ := r.AddOrMerge(NewDefinition(NoSymbol, 57.021464, "C", Static), false)
	i2, _ := r.AddOrMerge(NewDefinition(NoSymbol, 57.021464, "C", Dynamic), true)
	if i1 == i2 {
		t.Fatalf("different kinds must not merge")
	}
}

func TestResolveDynamicBySymbolPhases(t *testing.T) {
	r := NewRegistry()
	targeted := NewDefinition('*', 79.966331, "ST", Dynamic)
	untargeted := NewDefinition('#', 14.01565, "", Dynamic)
	other := NewDefinition('@', 42.010565, "K", Dynamic)
	for _, d := range []*Definition{targeted, untargeted, other} {
		if _, err := r.AddOrMerge(d, false); err != nil {
			t.Fatal(err)
		}
	}

	// Phase 1: targeted match by residue.
	d, found := r.ResolveDynamicBySymbol('*', 'T', peptide.TerminusNone)
	if !found || d != targeted {
		t.Fatalf("targeted resolve failed")
	}
	// Phase 2: untargeted symbol matches any residue.
	d, found = r.ResolveDynamicBySymbol('#', 'G', peptide.TerminusNone)
	if !found || d != untargeted {
		t.Fatalf("untargeted resolve failed")
	}
	// Phase 3: residue not in target set still resolves by symbol alone.
	d, found = r.ResolveDynamicBySymbol('@', 'M', peptide.TerminusNone)
	if !found || d != other {
		t.Fatalf("symbol-only resolve failed")
	}
	// Miss: zero-mass placeholder, never nil.
	d, found = r.ResolveDynamicBySymbol('!', 'A', peptide.TerminusNone)
	if found || d == nil || d.Mass != 0 {
		t.Fatalf("miss must return zero-mass placeholder, got %+v found=%v", d, found)
	}
	if d.MassCorrectionTag == "" {
		t.Fatalf("placeholder must carry a mass-correction tag")
	}
}

func TestTerminusCrossSatisfaction(t *testing.T) {
	r := NewRegistry()
	pepN := NewDefinition('*', 42.010565, string(NTerminalPeptide), Dynamic)
	protC := NewDefinition('#', 14.01565, string(CTerminalProtein), Dynamic)
	for _, d := range []*Definition{pepN, protC} {
		if _, err := r.AddOrMerge(d, false); err != nil {
			t.Fatal(err)
		}
	}

	// Peptide-N target satisfied by a protein-N-terminal residue.
	if d, found := r.ResolveDynamicBySymbol('*', 'M', peptide.ProteinNTerminus); !found || d != pepN {
		t.Fatalf("peptide-N target must satisfy protein-N state")
	}
	// Protein-C target NOT satisfied by a merely peptide-C-terminal residue.
	if _, found := r.ResolveDynamicBySymbol('#', 'K', peptide.PeptideCTerminus); found {
		t.Fatalf("protein-C target must not satisfy peptide-C state")
	}
	// ...but is satisfied at a real protein C terminus.
	if d, found := r.ResolveDynamicBySymbol('#', 'K', peptide.ProteinCTerminus); !found || d != protC {
		t.Fatalf("protein-C target must satisfy protein-C state")
	}
}

func TestResolveByMass(t *testing.T) {
	r := NewRegistry()
	phos := NewDefinition('*', 79.966331, "STY", Dynamic)
	if _, err := r.AddOrMerge(phos, false); err != nil {
		t.Fatal(err)
	}

	// Targeted hit.
	if d := r.ResolveByMass(79.9663, 'S', peptide.TerminusNone, 3, false); d != phos {
		t.Fatalf("targeted mass resolve failed, got %+v", d)
	}

	// Standard refinement: -17.0265 on Q resolves to the ammonia-loss tag.
	d := r.ResolveByMass(-17.0265, 'Q', peptide.TerminusNone, 3, true)
	if d.MassCorrectionTag != "NH3_Loss" {
		t.Fatalf("refinement tag = %q, want NH3_Loss", d.MassCorrectionTag)
	}
	if d.Symbol != LastResortSymbol {
		t.Fatalf("refinement symbol = %q, want last-resort", d.Symbol)
	}

	// Unknown mass synthesizes a registered Dynamic definition.
	before := r.Len()
	d = r.ResolveByMass(123.456, 'W', peptide.TerminusNone, 3, true)
	if r.Len() != before+1 {
		t.Fatalf("unknown mass should register one definition")
	}
	if d.Symbol != LastResortSymbol || d.TargetResidues != "W" || d.Kind != Dynamic {
		t.Fatalf("synthesized definition wrong: %+v", d)
	}
	// Same mass again: resolved to the same definition, nothing new added.
	d2 := r.ResolveByMass(123.456, 'W', peptide.TerminusNone, 3, true)
	if d2 != d || r.Len() != before+1 {
		t.Fatalf("repeat resolve must reuse the registered definition")
	}

	// addIfUnknown=false leaves the registry untouched.
	r.ResolveByMass(777.7, 'A', peptide.TerminusNone, 3, false)
	if r.Len() != before+1 {
		t.Fatalf("addIfUnknown=false must not register")
	}
}

func TestResolveByMassTerminusTarget(t *testing.T) {
	r := NewRegistry()
	d := r.ResolveByMass(42.010565, 'M', peptide.ProteinNTerminus, 3, true)
	if d.TargetResidues != string(NTerminalProtein) {
		t.Fatalf("synthesized target = %q, want protein-N sentinel", d.TargetResidues)
	}
}

func TestResolveByMassAndKind(t *testing.T) {
	r := NewRegistry()
	stat := NewDefinition(NoSymbol, 57.021464, "C", Static)
	if _, err := r.AddOrMerge(stat, false); err != nil {
		t.Fatal(err)
	}

	if d := r.ResolveByMassAndKind(57.0215, Static, 'C', peptide.TerminusNone, 3, false); d != stat {
		t.Fatalf("kind-constrained resolve failed")
	}
	// Dynamic constraint must not see the static definition.
	if d := r.ResolveByMassAndKind(57.0215, Dynamic, 'C', peptide.TerminusNone, 3, false); d == stat {
		t.Fatalf("kind constraint ignored")
	}
	// Synthesized terminus statics keep the no-symbol sentinel.
	pool := r.AvailableSymbols()
	d := r.ResolveByMassAndKind(229.162932, TerminalPeptideStatic, 'K', peptide.PeptideNTerminus, 3, true)
	if d.Symbol != NoSymbol || r.AvailableSymbols() != pool {
		t.Fatalf("terminus static must not consume a pooled symbol")
	}
}

func TestEquivalentToMassTolerance(t *testing.T) {
	a := NewDefinition('*', 100.0, "S", Dynamic)
	a.MassCorrectionTag = "X"
	b := NewDefinition('#', 100.0004, "T", Dynamic)
	b.MassCorrectionTag = "X"

	if !a.EquivalentTo(b, 3, false) {
		t.Fatalf("within tolerance at precision 3")
	}
	b.Mass = 100.001
	if a.EquivalentTo(b, 3, false) {
		t.Fatalf("10^-3 apart must not match at precision 3")
	}
	if !a.EquivalentTo(b, 2, false) {
		t.Fatalf("10^-3 apart must match at precision 2")
	}
	b.Mass = 100.0004
	if a.EquivalentTo(b, 3, true) {
		t.Fatalf("consider-symbol mode must reject differing symbols")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mods.txt")
	data := "" +
		"*\t79.966331\tSTY\tD\tPhosph\n" +
		"-\t57.021464\tC\tS\n" +
		"-\t42.010565\t<\tT\tAcetyl\n" +
		"xx\t1.0\n" + // malformed symbol: skipped
		"#\tnotanumber\n" + // malformed mass: skipped
		"#\t14.01565\tKk9R\tQ\n" // unknown kind -> Dynamic; lowercase/digit dropped
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewRegistry()
	if err := r.LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if r.Len() != 4 {
		t.Fatalf("expected 4 definitions, got %d", r.Len())
	}

	phos := r.Definition(0)
	if phos.Symbol != '*' || phos.Kind != Dynamic || phos.MassCorrectionTag != "Phosph" || phos.TargetResidues != "STY" {
		t.Fatalf("phospho row parsed wrong: %+v", phos)
	}
	carb := r.Definition(1)
	if carb.Symbol != NoSymbol || carb.Kind != Static || carb.MassCorrectionTag != "IodoAcet" {
		t.Fatalf("static row parsed wrong: %+v", carb)
	}
	acet := r.Definition(2)
	if acet.Kind != TerminalPeptideStatic || acet.TargetResidues != string(NTerminalPeptide) {
		t.Fatalf("terminus row parsed wrong: %+v", acet)
	}
	dyn := r.Definition(3)
	if dyn.Kind != Dynamic || dyn.TargetResidues != "KR" {
		t.Fatalf("fallback-kind row parsed wrong: %+v", dyn)
	}

	// The file's '*' symbol must be retired from the pool.
	pool := r.AvailableSymbols()
	idx, _ := r.AddOrMerge(NewDefinition(NoSymbol, 999.9, "A", Dynamic), true)
	if r.Definition(idx).Symbol == '*' {
		t.Fatalf("retired symbol handed out again")
	}
	if r.AvailableSymbols() != pool-1 {
		t.Fatalf("allocation should draw exactly one symbol")
	}
}

func TestLoadFileMissingResetsToDefaults(t *testing.T) {
	r := NewRegistry()
	if _, err := r.AddOrMerge(NewDefinition('*', 1.0, "A", Dynamic), false); err != nil {
		t.Fatal(err)
	}
	err := r.LoadFile(filepath.Join(t.TempDir(), "nope.txt"))
	if err == nil {
		t.Fatalf("expected recoverable error")
	}
	if r.Len() != 0 {
		t.Fatalf("registry must reset to defaults, len=%d", r.Len())
	}
	if r.AvailableSymbols() != len([]rune(DefaultModificationSymbols)) {
		t.Fatalf("symbol pool must be restored")
	}
}
