// core/protmap/mapper.go
// Package protmap maps clean peptide sequences onto a protein set loaded
// from FASTA. Peptides repeat heavily across PSMs of one run, so lookups are
// memoized in an LRU cache.
package protmap

import (
	"context"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"phrp-core/fasta"
	"phrp-core/peptide"
)

// DefaultCacheSize bounds the peptide→location memo. A run rarely carries
// more distinct peptides than this; eviction only costs a re-scan.
const DefaultCacheSize = 50000

// Location is one occurrence of a peptide within a protein. Start/End are
// 1-based residue coordinates; Pre/Post are the flanking residues, with
// peptide.ProteinTerminusFlank at the protein termini.
type Location struct {
	Accession string
	Start     int
	End       int
	Pre       rune
	Post      rune
}

// Protein is one entry of the mapped set.
type Protein struct {
	Accession   string
	Description string
	Sequence    string
}

// Mapper scans a fixed protein set for peptide occurrences.
type Mapper struct {
	proteins []Protein
	cache    *lru.Cache[string, []Location]
}

// New builds a mapper over proteins. cacheSize <= 0 selects the default.
func New(proteins []Protein, cacheSize int) (*Mapper, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, []Location](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("protein map cache: %w", err)
	}
	return &Mapper{proteins: proteins, cache: cache}, nil
}

// Load reads the protein set from a FASTA file and builds a mapper over it.
// The whole set is held in memory; the mapper scans it per peptide.
func Load(ctx context.Context, path string, cacheSize int) (*Mapper, error) {
	records, err := fasta.ReadAllCtx(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("protein fasta %s: %w", path, err)
	}
	proteins := make([]Protein, 0, len(records))
	for _, r := range records {
		proteins = append(proteins, Protein{
			Accession:   r.Accession,
			Description: r.Description,
			Sequence:    string(r.Seq),
		})
	}
	return New(proteins, cacheSize)
}

// Proteins returns the protein set in file order.
func (m *Mapper) Proteins() []Protein { return m.proteins }

// Map returns every occurrence of the clean peptide across the protein set,
// in protein order and ascending start position, overlaps included. Results
// are memoized; callers must treat the returned slice as read-only.
func (m *Mapper) Map(cleanPeptide string) []Location {
	if cleanPeptide == "" {
		return nil
	}
	if locs, ok := m.cache.Get(cleanPeptide); ok {
		return locs
	}
	var locs []Location
	for _, p := range m.proteins {
		from := 0
		for {
			i := strings.Index(p.Sequence[from:], cleanPeptide)
			if i < 0 {
				break
			}
			start := from + i // 0-based
			end := start + len(cleanPeptide)
			loc := Location{
				Accession: p.Accession,
				Start:     start + 1,
				End:       end,
				Pre:       peptide.ProteinTerminusFlank,
				Post:      peptide.ProteinTerminusFlank,
			}
			if start > 0 {
				loc.Pre = rune(p.Sequence[start-1])
			}
			if end < len(p.Sequence) {
				loc.Post = rune(p.Sequence[end])
			}
			locs = append(locs, loc)
			from = start + 1 // step by one so overlapping hits are found
		}
	}
	m.cache.Add(cleanPeptide, locs)
	return locs
}

// Flanks returns the flanking residues of the peptide's first occurrence,
// for filling in pre/post context when the input rows lack it.
func (m *Mapper) Flanks(cleanPeptide string) (pre, post string, found bool) {
	locs := m.Map(cleanPeptide)
	if len(locs) == 0 {
		return "", "", false
	}
	return string(locs[0].Pre), string(locs[0].Post), true
}
