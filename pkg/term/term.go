package term

import "math/big"

// Term is the tagged sum over every Erlang value kind this codec knows
// how to encode and decode. Concrete types below are the variants;
// dispatch on them with a type switch.
type Term interface {
	isTerm()
}

// Atom is a UTF-8 string. Equality is byte-wise.
type Atom string

func (Atom) isTerm() {}

// FixInteger is a signed 32-bit integer.
type FixInteger int32

func (FixInteger) isTerm() {}

// BigInteger is an arbitrary-precision signed integer, backed by
// math/big.Int. The wire contract (sign byte + little-endian magnitude)
// is only an encoding detail; math/big is the standard-library type that
// already models exactly this value space.
type BigInteger struct {
	Value *big.Int
}

func (BigInteger) isTerm() {}

// NewBigInteger wraps v as a Term.
func NewBigInteger(v *big.Int) BigInteger {
	return BigInteger{Value: v}
}

// Float is an IEEE-754 binary64 value.
type Float float64

func (Float) isTerm() {}

// Pid identifies an Erlang process. Creation is always stored widened to
// 32 bits; ID is always stored widened to 32 bits regardless of which
// on-wire form (legacy 15-bit, new 32-bit) produced it.
type Pid struct {
	Node     Atom
	ID       uint32
	Serial   uint32
	Creation uint32
}

func (Pid) isTerm() {}

// Port identifies an Erlang port. ID is stored widened to 64 bits.
type Port struct {
	Node     Atom
	ID       uint64
	Creation uint32
}

func (Port) isTerm() {}

// Reference identifies an Erlang reference. ID holds 1 to 5 32-bit words
// depending on which on-wire form produced it (legacy REFERENCE has
// exactly 1, NEW_REFERENCE/NEWER_REFERENCE have 1..5).
type Reference struct {
	Node     Atom
	Creation uint32
	ID       []uint32
}

func (Reference) isTerm() {}

// Tuple is an ordered, fixed-arity sequence of Terms.
type Tuple []Term

func (Tuple) isTerm() {}

// Nil is the empty-list sentinel.
type Nil struct{}

func (Nil) isTerm() {}

// List is a proper or improper list: Elements are the head items, Tail
// is the terminator (Nil{} for a proper list, any Term otherwise).
type List struct {
	Elements []Term
	Tail     Term
}

func (List) isTerm() {}

// ProperList builds a List terminated by Nil.
func ProperList(elems ...Term) List {
	return List{Elements: elems, Tail: Nil{}}
}

// MapPair is one key/value entry of a Map, in encounter order.
type MapPair struct {
	Key   Term
	Value Term
}

// Map is an ordered sequence of key/value pairs. Decoding rejects
// duplicate keys.
type Map []MapPair

func (Map) isTerm() {}

// Binary is an arbitrary byte string.
type Binary []byte

func (Binary) isTerm() {}

// BitBinary is a Binary whose final byte only uses its low Bits bits
// (1..8).
type BitBinary struct {
	Data []byte
	Bits uint8
}

func (BitBinary) isTerm() {}

// ExternalFun is an EXPORT-tagged closure reference: Module:Function/Arity.
type ExternalFun struct {
	Module   Atom
	Function Atom
	Arity    uint8
}

func (ExternalFun) isTerm() {}

// InternalFun is a NEW_FUN/FUN closure literal.
type InternalFun struct {
	Arity     uint8
	Uniq      [16]byte
	Index     uint32
	NumFree   uint32
	Module    Atom
	OldIndex  int32
	OldUniq   int32
	Pid       Pid
	FreeVars  []Term
}

func (InternalFun) isTerm() {}

// AtomCacheRef is a reference into the connection-local atom cache. It
// only decodes meaningfully within a distribution message payload; see
// package atomcache for resolution against a live table.
type AtomCacheRef struct {
	Index int
}

func (AtomCacheRef) isTerm() {}
