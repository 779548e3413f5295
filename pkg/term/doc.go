// Package term implements the Erlang External Term Format (ETF): the
// tagged binary encoding used to serialize Erlang values on the wire.
//
// # Wire Overview
//
// A top-level encoded term begins with the version magic byte 131,
// followed by exactly one tagged value. Tags select the concrete shape
// that follows; some kinds (atoms, pids, ports, references) have more
// than one legal tag for compatibility with older nodes. Decode accepts
// every tag in the published table; Encode always picks the narrowest
// or newest legal tag, per the policy documented on each type.
//
// # Kinds
//
// Atom, FixInteger, BigInteger, Float, Pid, Port, Reference, Tuple, List,
// Map, Binary, BitBinary, Nil, ExternalFun, InternalFun and AtomCacheRef
// all implement Term. AtomCacheRef only decodes meaningfully inside a
// distribution message payload with an atom cache attached; see package
// atomcache.
//
// # Usage
//
//	var buf bytes.Buffer
//	if err := term.Encode(&buf, term.Atom("ok")); err != nil { ... }
//	v, err := term.Decode(&buf)
package term
