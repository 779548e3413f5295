package atomcache

import "github.com/ZentaChain/erldist/pkg/term"

// Size is the number of slots in one direction's cache: 11 bits of index
// space (3 segment bits carried in the update-section flags nibble, 8
// explicit bits per reference).
const Size = 2048

// Table is the passive, slot-addressed store for one direction of one
// connection. It is not safe for concurrent use; each direction of a
// channel owns its own Table and is driven by a single goroutine.
type Table struct {
	slots [Size]*term.Atom
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{}
}

// Get returns the atom installed at slot, if any.
func (t *Table) Get(slot int) (term.Atom, bool) {
	if slot < 0 || slot >= Size {
		return "", false
	}
	a := t.slots[slot]
	if a == nil {
		return "", false
	}
	return *a, true
}

// Set installs a at slot, overwriting whatever was there.
func (t *Table) Set(slot int, a term.Atom) {
	if slot < 0 || slot >= Size {
		return
	}
	v := a
	t.slots[slot] = &v
}

// Reset clears every slot. Used when a connection is torn down and its
// cache state can no longer be assumed valid by a future connection.
func (t *Table) Reset() {
	for i := range t.slots {
		t.slots[i] = nil
	}
}
