// core/modification/loader.go
package modification

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// validTargetChar reports whether c may appear in a target-residue column:
// uppercase residue letters plus the four terminus sentinels. Anything else
// is silently dropped during parsing.
func validTargetChar(c rune) bool {
	switch {
	case c >= 'A' && c <= 'Z':
		return true
	case c == NTerminalPeptide, c == CTerminalPeptide, c == NTerminalProtein, c == CTerminalProtein:
		return true
	default:
		return false
	}
}

func filterTargets(raw string) string {
	var b strings.Builder
	for _, c := range raw {
		if validTargetChar(c) {
			b.WriteRune(c)
		}
	}
	return b.String()
}

// parseDefinitionLine parses one tab-delimited definitions row:
//
//	symbol  mass  [targets]  [kind code]  [mass-correction tag]  [affected atom]
//
// Returns nil for malformed rows (multi-character symbol, non-numeric mass);
// those are skipped, not fatal.
func parseDefinitionLine(line string) *Definition {
	cols := strings.Split(line, "\t")
	if len(cols) < 2 {
		return nil
	}
	symCol := strings.TrimSpace(cols[0])
	if len([]rune(symCol)) != 1 {
		return nil
	}
	mass, err := strconv.ParseFloat(strings.TrimSpace(cols[1]), 64)
	if err != nil {
		return nil
	}

	def := NewDefinition([]rune(symCol)[0], mass, "", Dynamic)
	if len(cols) > 2 {
		def.TargetResidues = filterTargets(strings.TrimSpace(cols[2]))
	}
	if len(cols) > 3 {
		code := strings.TrimSpace(cols[3])
		if code != "" {
			def.Kind = KindFromCode([]rune(code)[0])
		}
	}
	if len(cols) > 4 {
		if tag := strings.TrimSpace(cols[4]); tag != "" {
			def.MassCorrectionTag = tag
		}
	}
	if len(cols) > 5 {
		if atom := strings.TrimSpace(cols[5]); atom != "" {
			def.AffectedAtom = []rune(atom)[0]
		}
	}

	// Static-family rows never carry a symbol; the column is overwritten.
	switch def.Kind {
	case Static, TerminalPeptideStatic, ProteinTerminusStatic, IsotopicMod:
		def.Symbol = NoSymbol
	}
	return def
}

// LoadFile replaces the registry's definitions with the modification
// definitions file at path (tab-delimited, no header; see
// parseDefinitionLine for the column layout). Malformed rows are skipped.
//
// Failure is recoverable: the registry resets to defaults rather than being
// left half-populated, and a descriptive error is returned so the caller can
// warn and continue.
func (r *Registry) LoadFile(path string) error {
	fh, err := os.Open(path)
	if err != nil {
		r.SetDefaults()
		return fmt.Errorf("modification definitions file: %w (using built-in defaults)", err)
	}
	defer fh.Close()

	r.SetDefaults()
	sc := bufio.NewScanner(fh)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r\n")
		// '#' is itself an allocatable symbol, so "#\t..." is a definition
		// row, not a comment.
		if line == "" || (strings.HasPrefix(line, "#") && !strings.HasPrefix(line, "#\t")) {
			continue
		}
		def := parseDefinitionLine(line)
		if def == nil {
			continue
		}
		// Dynamic rows keep their file symbol; AddOrMerge retires it from
		// the pool so later ad hoc allocations can never collide with it.
		if _, err := r.AddOrMerge(def, false); err != nil {
			r.SetDefaults()
			return fmt.Errorf("modification definitions file %s: %w", path, err)
		}
	}
	if err := sc.Err(); err != nil {
		r.SetDefaults()
		return fmt.Errorf("modification definitions file %s: %w (using built-in defaults)", path, err)
	}
	return nil
}
