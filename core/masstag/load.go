// core/masstag/load.go
package masstag

import (
	"bufio"
	"fmt"
	"os"
)

// LoadFile replaces the table contents with the tags file at path
// (tab-delimited, no header: column 1 name, column 2 monoisotopic mass).
//
// Failure is recoverable: the table is reset to the built-in defaults and a
// descriptive error is returned so the caller can warn and continue.
func (t *Table) LoadFile(path string) error {
	fh, err := os.Open(path)
	if err != nil {
		t.reset()
		t.SetDefaultTags()
		return fmt.Errorf("mass correction tags file: %w (using built-in defaults)", err)
	}
	defer fh.Close()

	t.reset()
	sc := bufio.NewScanner(fh)
	if err := t.loadReader(sc); err != nil {
		t.reset()
		t.SetDefaultTags()
		return fmt.Errorf("mass correction tags file %s: %w (using built-in defaults)", path, err)
	}
	if len(t.entries) == 0 {
		t.SetDefaultTags()
		return fmt.Errorf("mass correction tags file %s: no usable rows (using built-in defaults)", path)
	}
	return nil
}

func (t *Table) reset() {
	t.entries = t.entries[:0]
	t.byName = make(map[string]int, 128)
	t.nextUnk = 1
}
