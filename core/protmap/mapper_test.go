// core/protmap/mapper_test.go
package protmap

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func newMapper(t *testing.T, proteins []Protein) *Mapper {
	t.Helper()
	m, err := New(proteins, 16)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestMapFindsAllOccurrences(t *testing.T) {
	m := newMapper(t, []Protein{
		{Accession: "P1", Sequence: "MKPEPTIDERPEPTIDEK"},
		{Accession: "P2", Sequence: "AAAPEPTIDEAAA"},
	})

	locs := m.Map("PEPTIDE")
	if len(locs) != 3 {
		t.Fatalf("got %d locations, want 3", len(locs))
	}
	first := locs[0]
	if first.Accession != "P1" || first.Start != 3 || first.End != 9 {
		t.Fatalf("first location = %+v", first)
	}
	if first.Pre != 'K' || first.Post != 'R' {
		t.Fatalf("flanks = %q/%q", first.Pre, first.Post)
	}
	if locs[2].Accession != "P2" {
		t.Fatalf("protein order not preserved: %+v", locs[2])
	}
}

func TestMapOverlappingOccurrences(t *testing.T) {
	m := newMapper(t, []Protein{{Accession: "P1", Sequence: "AAAA"}})
	if locs := m.Map("AA"); len(locs) != 3 {
		t.Fatalf("overlaps missed: got %d, want 3", len(locs))
	}
}

func TestMapProteinTerminusFlanks(t *testing.T) {
	m := newMapper(t, []Protein{{Accession: "P1", Sequence: "PEPTIDE"}})
	locs := m.Map("PEPTIDE")
	if len(locs) != 1 {
		t.Fatalf("got %d locations", len(locs))
	}
	if locs[0].Pre != '-' || locs[0].Post != '-' {
		t.Fatalf("whole-protein peptide should have '-' flanks, got %q/%q", locs[0].Pre, locs[0].Post)
	}
}

func TestMapMemoized(t *testing.T) {
	m := newMapper(t, []Protein{{Accession: "P1", Sequence: "MKPEPTIDER"}})

	a := m.Map("PEPTIDE")
	b := m.Map("PEPTIDE")
	if len(a) != 1 || len(b) != 1 || &a[0] != &b[0] {
		t.Fatalf("repeat lookup should return the cached slice")
	}
}

func TestMapMiss(t *testing.T) {
	m := newMapper(t, []Protein{{Accession: "P1", Sequence: "MKPEPTIDER"}})
	if locs := m.Map("WWWWW"); locs != nil {
		t.Fatalf("expected no locations, got %+v", locs)
	}
}

func TestLoadFromFasta(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prot.fa")
	if err := os.WriteFile(path, []byte(">P1 test protein\nMKPEPTIDER\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := Load(context.Background(), path, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Proteins()) != 1 || m.Proteins()[0].Description != "test protein" {
		t.Fatalf("proteins = %+v", m.Proteins())
	}
	pre, post, found := m.Flanks("PEPTIDE")
	if !found || pre != "K" || post != "R" {
		t.Fatalf("flanks = %q/%q found=%v", pre, post, found)
	}
}
