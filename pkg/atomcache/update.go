package atomcache

import (
	"encoding/binary"
	"io"

	"github.com/ZentaChain/erldist/pkg/term"
)

// Ref is one entry of a cache-update section: either a fresh assignment
// (New, carrying the atom text) or a hit against an already-installed
// slot (just the slot number).
type Ref struct {
	Slot int
	Atom term.Atom
	New  bool
}

// EncodeUpdate writes the cache-update section described in §4.2: a
// 1-byte count, a packed 4-bit-per-ref flags field (high 3 bits of the
// slot number plus a new/hit bit, with a trailing nibble for the
// long-atoms flag), then per-ref payloads in the same order.
func EncodeUpdate(w io.Writer, refs []Ref) error {
	n := len(refs)
	if n == 0 {
		_, err := w.Write([]byte{0})
		return err
	}
	if n > 255 {
		return &TooManyRefsError{Count: n}
	}

	longAtoms := false
	for _, r := range refs {
		if r.New && len(r.Atom) > 255 {
			longAtoms = true
		}
	}

	flags := make([]byte, (n+2)/2) // ceil((n+1)/2)
	setNibble := func(i int, v byte) {
		if i%2 == 0 {
			flags[i/2] |= v & 0x0f
		} else {
			flags[i/2] |= (v & 0x0f) << 4
		}
	}
	for i, r := range refs {
		segBits := byte((r.Slot >> 8) & 0x07)
		var newBit byte
		if r.New {
			newBit = 1
		}
		setNibble(i, (segBits<<1)|newBit)
	}
	var longBit byte
	if longAtoms {
		longBit = 1
	}
	setNibble(n, longBit)

	if _, err := w.Write([]byte{byte(n)}); err != nil {
		return err
	}
	if _, err := w.Write(flags); err != nil {
		return err
	}

	for _, r := range refs {
		if _, err := w.Write([]byte{byte(r.Slot & 0xff)}); err != nil {
			return err
		}
		if !r.New {
			continue
		}
		text := []byte(r.Atom)
		if longAtoms {
			var lb [2]byte
			binary.BigEndian.PutUint16(lb[:], uint16(len(text)))
			if _, err := w.Write(lb[:]); err != nil {
				return err
			}
		} else {
			if len(text) > 255 {
				return &AtomTooLongError{Length: len(text)}
			}
			if _, err := w.Write([]byte{byte(len(text))}); err != nil {
				return err
			}
		}
		if _, err := w.Write(text); err != nil {
			return err
		}
	}
	return nil
}

// DecodeUpdate reads a cache-update section written by EncodeUpdate,
// installing any new atoms into table and returning the full resolved
// Ref list in wire order. A hit against a slot table has never seen is
// a CacheMissError: the two directions' cache state has diverged.
func DecodeUpdate(r io.Reader, table *Table) ([]Ref, error) {
	nb, err := readByte(r)
	if err != nil {
		return nil, err
	}
	n := int(nb)
	if n == 0 {
		return nil, nil
	}

	wantFlagsLen := (n + 2) / 2
	flags, err := readFull(r, wantFlagsLen)
	if err != nil {
		return nil, err
	}
	getNibble := func(i int) byte {
		b := flags[i/2]
		if i%2 == 0 {
			return b & 0x0f
		}
		return (b >> 4) & 0x0f
	}
	longAtoms := getNibble(n)&0x01 == 1

	refs := make([]Ref, n)
	for i := 0; i < n; i++ {
		nibble := getNibble(i)
		isNew := nibble&0x01 == 1
		segBits := int((nibble >> 1) & 0x07)

		idxByte, err := readByte(r)
		if err != nil {
			return nil, err
		}
		slot := (segBits << 8) | int(idxByte)

		if !isNew {
			a, ok := table.Get(slot)
			if !ok {
				return nil, &CacheMissError{Slot: slot}
			}
			refs[i] = Ref{Slot: slot, Atom: a, New: false}
			continue
		}

		var length int
		if longAtoms {
			l, err := readUint16(r)
			if err != nil {
				return nil, err
			}
			length = int(l)
		} else {
			l, err := readByte(r)
			if err != nil {
				return nil, err
			}
			length = int(l)
		}
		text, err := readFull(r, length)
		if err != nil {
			return nil, err
		}
		a := term.Atom(text)
		table.Set(slot, a)
		refs[i] = Ref{Slot: slot, Atom: a, New: true}
	}
	return refs, nil
}
