// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"

	"phrp/internal/parser"

	"phrp-core/mass"
	"phrp-core/modification"
	"phrp-core/protmap"
	"phrp-core/psm"
)

// Config controls the resolution loop.
type Config struct {
	// MaxDetailedErrors caps how many row-level error messages are retained
	// verbatim; further failures are still counted. <=0 selects the default.
	MaxDetailedErrors int

	// DisallowDuplicateTerminusMods skips a terminus static mod when an
	// equivalent modification is already attached at the same position.
	DisallowDuplicateTerminusMods bool
}

// DefaultMaxDetailedErrors is the retained-error cap when Config leaves it 0.
const DefaultMaxDetailedErrors = 25

// Deps are the per-run collaborators threaded through every row.
type Deps struct {
	Registry   *modification.Registry
	Calculator *mass.Calculator
	Mapper     *protmap.Mapper // optional; nil disables protein mapping
}

// Result is one fully resolved PSM.
type Result struct {
	Row       parser.Row
	Peptide   string // normalized peptide (symbols, flanks)
	PSM       *psm.SearchResult
	Locations []protmap.Location
}

// Stats summarizes one run of the loop.
type Stats struct {
	Rows     int // rows read from the input
	Resolved int // rows that reached the visitor
	Failed   int // rows skipped due to a row-level failure
	Errors   []string
}

func (s *Stats) note(max int, format string, a ...any) {
	if len(s.Errors) < max {
		s.Errors = append(s.Errors, fmt.Sprintf(format, a...))
	}
}

func (s *Stats) fail(max int, format string, a ...any) {
	s.Failed++
	s.note(max, format, a...)
}

// ForEachResult reads rows from rd and calls visit with each resolved
// result. Row-level failures (malformed rows, unresolvable sequences, mass
// computation errors) are recorded in Stats and skipped; the batch
// continues. Cancellation is honored between rows. The first visitor error
// aborts the run.
//
// The same SearchResult is cleared and reused across rows; visitors that
// retain data must copy what they need before returning.
func ForEachResult(ctx context.Context, cfg Config, deps Deps, rd *parser.Reader, visit func(*Result) error) (Stats, error) {
	if cfg.MaxDetailedErrors <= 0 {
		cfg.MaxDetailedErrors = DefaultMaxDetailedErrors
	}
	var stats Stats
	sr := psm.New(deps.Registry, deps.Calculator)

	for {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		row, err := rd.Read()
		if errors.Is(err, io.EOF) {
			return stats, nil
		}
		if err != nil {
			stats.Rows++
			stats.fail(cfg.MaxDetailedErrors, "%v", err)
			continue
		}
		stats.Rows++

		normalized, err := parser.NormalizeInlineDeltas(row.Peptide, deps.Registry)
		if err != nil {
			// A delta the rewrite could not place (symbol pool exhausted)
			// would compute against the wrong definition. Skip the row.
			stats.fail(cfg.MaxDetailedErrors, "row %d: %v", row.ResultID, err)
			continue
		}

		sr.Clear()
		sr.SetPeptide(normalized)
		if sr.CleanSequence == "" {
			stats.fail(cfg.MaxDetailedErrors, "row %d: no residues in peptide %q", row.ResultID, row.Peptide)
			continue
		}

		var locs []protmap.Location
		if deps.Mapper != nil {
			locs = deps.Mapper.Map(sr.CleanSequence)
			// Fill missing flank context from the protein map, then
			// reclassify with the richer flanks.
			if sr.PrefixResidues == "" && sr.SuffixResidues == "" {
				if pre, post, ok := deps.Mapper.Flanks(sr.CleanSequence); ok {
					sr.SetPeptide(pre + "." + sr.SequenceWithMods + "." + post)
				}
			}
		}

		sr.AddIsotopicModifications(true)
		sr.AddDynamicAndStaticResidueMods(true)
		sr.AddTerminusStaticMods(cfg.DisallowDuplicateTerminusMods, true)
		if _, err := sr.ComputeMonoisotopicMass(); err != nil {
			stats.fail(cfg.MaxDetailedErrors, "row %d: %v", row.ResultID, err)
			continue
		}

		stats.Resolved++
		if err := visit(&Result{Row: row, Peptide: normalized, PSM: sr, Locations: locs}); err != nil {
			return stats, err
		}
	}
}
