package atomcache

import "fmt"

// CacheMissError is returned when a cache-hit reference names a slot that
// has never been populated on this table: the peers have diverged on
// cache state, and the connection should be dropped rather than limped
// along.
type CacheMissError struct {
	Slot int
}

func (e *CacheMissError) Error() string {
	return fmt.Sprintf("atomcache: reference to unpopulated slot %d", e.Slot)
}

// AtomTooLongError is returned when an atom exceeds 255 bytes in a
// cache-update section that has not negotiated the long-atoms form.
type AtomTooLongError struct {
	Length int
}

func (e *AtomTooLongError) Error() string {
	return fmt.Sprintf("atomcache: atom of %d bytes exceeds 255-byte limit without long atoms", e.Length)
}

// TooManyRefsError is returned when more than 255 references are offered
// to EncodeUpdate: NumberOfAtomCacheRefs is a single byte.
type TooManyRefsError struct {
	Count int
}

func (e *TooManyRefsError) Error() string {
	return fmt.Sprintf("atomcache: %d references exceeds the 255-per-section limit", e.Count)
}
