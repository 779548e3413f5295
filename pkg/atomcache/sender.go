package atomcache

import "github.com/ZentaChain/erldist/pkg/term"

// Sender tracks which atoms have already been assigned a cache slot on
// one outbound direction of a connection, and rewrites terms to reference
// them instead of carrying their text again. Slots are handed out
// round-robin and wrap, overwriting the oldest assignment, once all 2048
// are in use; peers track the same history from the update sections they
// receive, so the wrap is never ambiguous.
//
// Only Atom values reachable through Tuple, List and Map are rewritten.
// Atoms embedded in Pid, Port, Reference and fun node names travel
// inline: they are already paid for by the surrounding structure's fixed
// fields, and keeping them out of the rewrite keeps slot accounting
// simple.
type Sender struct {
	table  *Table
	slotOf map[term.Atom]int
	next   int
}

// NewSender returns a Sender with an empty cache.
func NewSender() *Sender {
	return &Sender{table: NewTable(), slotOf: make(map[term.Atom]int)}
}

// Prepare rewrites t, replacing cache-eligible atoms with
// term.AtomCacheRef, and returns the Ref entries that must accompany it
// in this message's cache-update section: one Ref per distinct slot,
// New for an atom assigned its slot in this call and a hit otherwise.
// Refs is nil only if t contained no eligible atoms.
func (s *Sender) Prepare(t term.Term) (term.Term, []Ref) {
	var refs []Ref
	seen := make(map[int]bool)
	out := s.rewrite(t, &refs, seen)
	return out, refs
}

func (s *Sender) rewrite(t term.Term, refs *[]Ref, seen map[int]bool) term.Term {
	switch v := t.(type) {
	case term.Atom:
		slot, ok := s.slotOf[v]
		isNew := !ok
		if !ok {
			slot = s.next
			s.next = (s.next + 1) % Size
			if old, taken := s.table.Get(slot); taken {
				delete(s.slotOf, old)
			}
			s.slotOf[v] = slot
			s.table.Set(slot, v)
		}
		if !seen[slot] {
			seen[slot] = true
			*refs = append(*refs, Ref{Slot: slot, Atom: v, New: isNew})
		}
		return term.AtomCacheRef{Index: slot}
	case term.Tuple:
		out := make(term.Tuple, len(v))
		for i, e := range v {
			out[i] = s.rewrite(e, refs, seen)
		}
		return out
	case term.List:
		elems := make([]term.Term, len(v.Elements))
		for i, e := range v.Elements {
			elems[i] = s.rewrite(e, refs, seen)
		}
		return term.List{Elements: elems, Tail: s.rewrite(v.Tail, refs, seen)}
	case term.Map:
		out := make(term.Map, len(v))
		for i, p := range v {
			out[i] = term.MapPair{
				Key:   s.rewrite(p.Key, refs, seen),
				Value: s.rewrite(p.Value, refs, seen),
			}
		}
		return out
	default:
		return t
	}
}
