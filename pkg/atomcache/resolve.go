package atomcache

import "github.com/ZentaChain/erldist/pkg/term"

// Resolve walks t, replacing every term.AtomCacheRef with the atom
// installed at its slot in table. It mirrors the rewrite Sender.Prepare
// performs on the sending side, so it only descends into Tuple, List and
// Map. The term decoder already rejects an AtomCacheRef in the node or
// module position of a Pid, Port, Reference or fun; one inside an
// InternalFun's free variables is returned unresolved.
func Resolve(t term.Term, table *Table) (term.Term, error) {
	switch v := t.(type) {
	case term.AtomCacheRef:
		a, ok := table.Get(v.Index)
		if !ok {
			return nil, &CacheMissError{Slot: v.Index}
		}
		return a, nil
	case term.Tuple:
		out := make(term.Tuple, len(v))
		for i, e := range v {
			r, err := Resolve(e, table)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return out, nil
	case term.List:
		elems := make([]term.Term, len(v.Elements))
		for i, e := range v.Elements {
			r, err := Resolve(e, table)
			if err != nil {
				return nil, err
			}
			elems[i] = r
		}
		tail, err := Resolve(v.Tail, table)
		if err != nil {
			return nil, err
		}
		return term.List{Elements: elems, Tail: tail}, nil
	case term.Map:
		out := make(term.Map, len(v))
		for i, p := range v {
			k, err := Resolve(p.Key, table)
			if err != nil {
				return nil, err
			}
			val, err := Resolve(p.Value, table)
			if err != nil {
				return nil, err
			}
			out[i] = term.MapPair{Key: k, Value: val}
		}
		return out, nil
	default:
		return t, nil
	}
}
