// core/masstag/table.go
// Mass-correction tags: canonical short names for modification mass deltas.
//
// The table is ordered; lookups scan entries in insertion order and the first
// entry whose mass matches at the requested precision wins. Downstream output
// depends on that order being stable, so the table never reorders itself.
package masstag

import (
	"bufio"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// UnknownTag is the reserved "not yet resolved" tag name. It is never
	// minted for a real mass.
	UnknownTag = "UnkMod00"

	// Auto-name namespaces, widened only after the previous one fills up.
	twoDigitMax   = 99
	fiveDigitMax  = 99999
	sevenDigitMax = 9999999
)

// Entry is one (name, monoisotopic mass) pair.
type Entry struct {
	Name string
	Mass float64
}

// Table is an ordered name↔mass lookup with auto-naming for unknown masses.
type Table struct {
	entries []Entry
	byName  map[string]int // name -> index into entries
	nextUnk int            // next auto-name sequence number (1-based)
}

// New returns an empty table. Most callers want NewWithDefaults.
func New() *Table {
	return &Table{byName: make(map[string]int, 128), nextUnk: 1}
}

// NewWithDefaults returns a table seeded with the built-in tag set.
func NewWithDefaults() *Table {
	t := New()
	t.SetDefaultTags()
	return t
}

// Len reports the number of registered tags.
func (t *Table) Len() int { return len(t.entries) }

// Entries returns the tags in insertion order. The slice is shared; callers
// must not mutate it.
func (t *Table) Entries() []Entry { return t.entries }

// MassByName returns the mass registered for name.
func (t *Table) MassByName(name string) (float64, bool) {
	i, ok := t.byName[name]
	if !ok {
		return 0, false
	}
	return t.entries[i].Mass, true
}

// Add registers a tag. A duplicate name is swallowed and the pre-existing
// entry wins; this is intentional best-effort behavior, not an error.
func (t *Table) Add(name string, mass float64) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	if _, dup := t.byName[name]; dup {
		return
	}
	t.byName[name] = len(t.entries)
	t.entries = append(t.entries, Entry{Name: name, Mass: mass})
}

// MassesMatch reports whether a and b agree at the given decimal precision:
// round(|a-b|, digits) == 0. Digits below 1 are clamped to 1.
func MassesMatch(a, b float64, digits int) bool {
	if digits < 1 {
		digits = 1
	}
	scale := math.Pow(10, float64(digits))
	return math.Round(math.Abs(a-b)*scale) == 0
}

// LookupOrCreate resolves mass to a tag name.
//
// It scans all entries in insertion order and returns the first whose mass
// matches at precisionDigits. If nothing matches and precisionDigits > 1 it
// retries once at precision 1. If still nothing matches and createIfMissing
// is set, a fresh auto-name is minted and registered so that re-querying the
// same mass returns the same name; otherwise "" is returned.
//
// The bool result reports whether the returned name came from a pre-existing
// entry (false for freshly minted names and for "").
func (t *Table) LookupOrCreate(mass float64, precisionDigits int, createIfMissing bool) (string, bool) {
	if precisionDigits < 1 {
		precisionDigits = 1
	}
	for _, e := range t.entries {
		if MassesMatch(e.Mass, mass, precisionDigits) {
			return e.Name, true
		}
	}
	if precisionDigits > 1 {
		for _, e := range t.entries {
			if MassesMatch(e.Mass, mass, 1) {
				return e.Name, true
			}
		}
	}
	if !createIfMissing {
		return "", false
	}
	name := t.mintName()
	t.Add(name, mass)
	return name, false
}

// mintName produces the next auto-name. Widths escalate only after the
// narrower namespace is exhausted: UnkMod01..UnkMod99, then Unk00100..
// Unk99999, then U0100000..U9999999. All names stay 8 characters.
func (t *Table) mintName() string {
	for t.nextUnk <= sevenDigitMax {
		n := t.nextUnk
		t.nextUnk++
		var name string
		switch {
		case n <= twoDigitMax:
			name = fmt.Sprintf("UnkMod%02d", n)
		case n <= fiveDigitMax:
			name = fmt.Sprintf("Unk%05d", n)
		default:
			name = fmt.Sprintf("U%07d", n)
		}
		if _, taken := t.byName[name]; !taken {
			return name
		}
	}
	// Namespace exhausted; reuse the sentinel rather than fail.
	return UnknownTag
}

// LoadReader replaces the table contents with tags parsed from r
// (tab-delimited, no header: name, monoisotopic mass). Malformed lines are
// skipped; duplicate names keep the first occurrence.
func (t *Table) loadReader(sc *bufio.Scanner) error {
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r\n")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		cols := strings.Split(line, "\t")
		if len(cols) < 2 {
			continue
		}
		mass, err := strconv.ParseFloat(strings.TrimSpace(cols[1]), 64)
		if err != nil {
			continue
		}
		t.Add(strings.TrimSpace(cols[0]), mass)
	}
	return sc.Err()
}
