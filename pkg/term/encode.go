package term

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"math/big"
)

// Encoder encodes terms to External Term Format, always picking the
// narrowest or newest legal tag for a value (§4.1 encoder policy).
type Encoder struct{}

// NewEncoder returns an Encoder.
func NewEncoder() *Encoder { return &Encoder{} }

// Encode writes the version magic followed by t.
func (e *Encoder) Encode(w io.Writer, t Term) error {
	if _, err := w.Write([]byte{VersionMagic}); err != nil {
		return err
	}
	return e.encodeValue(w, t)
}

// EncodeBody writes t without a leading version magic, for contexts
// where the magic is implied by outer framing (distribution message
// bodies, §4.5).
func (e *Encoder) EncodeBody(w io.Writer, t Term) error {
	return e.encodeValue(w, t)
}

// Encode is the package-level convenience form of (*Encoder).Encode.
func Encode(w io.Writer, t Term) error {
	return NewEncoder().Encode(w, t)
}

// EncodeToBytes encodes t, including the version magic, into a new slice.
func EncodeToBytes(t Term) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *Encoder) encodeValue(w io.Writer, t Term) error {
	switch v := t.(type) {
	case Atom:
		return e.encodeAtom(w, v)
	case FixInteger:
		return e.encodeFixInteger(w, v)
	case BigInteger:
		return e.encodeBigInteger(w, v)
	case Float:
		return e.encodeFloat(w, v)
	case Nil:
		_, err := w.Write([]byte{byte(TagNil)})
		return err
	case Tuple:
		return e.encodeTuple(w, v)
	case List:
		return e.encodeList(w, v)
	case Map:
		return e.encodeMap(w, v)
	case Binary:
		return e.encodeBinary(w, v)
	case BitBinary:
		return e.encodeBitBinary(w, v)
	case Pid:
		return e.encodePid(w, v)
	case Port:
		return e.encodePort(w, v)
	case Reference:
		return e.encodeReference(w, v)
	case ExternalFun:
		return e.encodeExternalFun(w, v)
	case InternalFun:
		return e.encodeInternalFun(w, v)
	case AtomCacheRef:
		return e.encodeAtomCacheRef(w, v)
	default:
		return fmt.Errorf("term: encode: unsupported term type %T", t)
	}
}

func (e *Encoder) encodeAtom(w io.Writer, a Atom) error {
	s := string(a)
	// Byte length, not rune count: the wire length prefix counts bytes.
	if len(s) <= 255 {
		if _, err := w.Write([]byte{byte(TagSmallAtomUTF8), byte(len(s))}); err != nil {
			return err
		}
		_, err := io.WriteString(w, s)
		return err
	}
	if _, err := w.Write([]byte{byte(TagAtomUTF8)}); err != nil {
		return err
	}
	if err := writeUint16(w, uint16(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func (e *Encoder) encodeFixInteger(w io.Writer, v FixInteger) error {
	if v >= 0 && v <= 255 {
		_, err := w.Write([]byte{byte(TagSmallInteger), byte(v)})
		return err
	}
	if _, err := w.Write([]byte{byte(TagInteger)}); err != nil {
		return err
	}
	return writeUint32(w, uint32(int32(v)))
}

func (e *Encoder) encodeBigInteger(w io.Writer, b BigInteger) error {
	v := b.Value
	if v == nil {
		v = big.NewInt(0)
	}
	if v.IsInt64() {
		iv := v.Int64()
		if iv >= 0 && iv <= 255 {
			_, err := w.Write([]byte{byte(TagSmallInteger), byte(iv)})
			return err
		}
		if iv >= math.MinInt32 && iv <= math.MaxInt32 {
			if _, err := w.Write([]byte{byte(TagInteger)}); err != nil {
				return err
			}
			return writeUint32(w, uint32(int32(iv)))
		}
	}
	sign := byte(0)
	if v.Sign() < 0 {
		sign = 1
	}
	mag := littleEndianMagnitude(v)
	if len(mag) <= 255 {
		if _, err := w.Write([]byte{byte(TagSmallBig), byte(len(mag)), sign}); err != nil {
			return err
		}
		_, err := w.Write(mag)
		return err
	}
	if _, err := w.Write([]byte{byte(TagLargeBig)}); err != nil {
		return err
	}
	if err := writeUint32(w, uint32(len(mag))); err != nil {
		return err
	}
	if _, err := w.Write([]byte{sign}); err != nil {
		return err
	}
	_, err := w.Write(mag)
	return err
}

func (e *Encoder) encodeFloat(w io.Writer, f Float) error {
	if _, err := w.Write([]byte{byte(TagNewFloat)}); err != nil {
		return err
	}
	return writeUint64(w, math.Float64bits(float64(f)))
}

func (e *Encoder) encodeTuple(w io.Writer, t Tuple) error {
	if len(t) <= 255 {
		if _, err := w.Write([]byte{byte(TagSmallTuple), byte(len(t))}); err != nil {
			return err
		}
	} else {
		if _, err := w.Write([]byte{byte(TagLargeTuple)}); err != nil {
			return err
		}
		if err := writeUint32(w, uint32(len(t))); err != nil {
			return err
		}
	}
	for _, elem := range t {
		if err := e.encodeValue(w, elem); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) encodeList(w io.Writer, l List) error {
	if len(l.Elements) == 0 {
		_, ok := l.Tail.(Nil)
		if ok || l.Tail == nil {
			_, err := w.Write([]byte{byte(TagNil)})
			return err
		}
	}
	if _, err := w.Write([]byte{byte(TagList)}); err != nil {
		return err
	}
	if err := writeUint32(w, uint32(len(l.Elements))); err != nil {
		return err
	}
	for _, elem := range l.Elements {
		if err := e.encodeValue(w, elem); err != nil {
			return err
		}
	}
	tail := l.Tail
	if tail == nil {
		tail = Nil{}
	}
	return e.encodeValue(w, tail)
}

func (e *Encoder) encodeMap(w io.Writer, m Map) error {
	if _, err := w.Write([]byte{byte(TagMap)}); err != nil {
		return err
	}
	if err := writeUint32(w, uint32(len(m))); err != nil {
		return err
	}
	for _, pair := range m {
		if err := e.encodeValue(w, pair.Key); err != nil {
			return err
		}
		if err := e.encodeValue(w, pair.Value); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) encodeBinary(w io.Writer, b Binary) error {
	if _, err := w.Write([]byte{byte(TagBinary)}); err != nil {
		return err
	}
	if err := writeUint32(w, uint32(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}

func (e *Encoder) encodeBitBinary(w io.Writer, b BitBinary) error {
	if _, err := w.Write([]byte{byte(TagBitBinary)}); err != nil {
		return err
	}
	if err := writeUint32(w, uint32(len(b.Data))); err != nil {
		return err
	}
	if _, err := w.Write([]byte{b.Bits}); err != nil {
		return err
	}
	_, err := w.Write(b.Data)
	return err
}

func (e *Encoder) encodeAtomField(w io.Writer, a Atom) error {
	return e.encodeAtom(w, a)
}

func (e *Encoder) encodePid(w io.Writer, p Pid) error {
	if _, err := w.Write([]byte{byte(TagNewPid)}); err != nil {
		return err
	}
	if err := e.encodeAtomField(w, p.Node); err != nil {
		return err
	}
	if err := writeUint32(w, p.ID); err != nil {
		return err
	}
	if err := writeUint32(w, p.Serial); err != nil {
		return err
	}
	return writeUint32(w, p.Creation)
}

func (e *Encoder) encodePort(w io.Writer, p Port) error {
	if p.ID > math.MaxUint32 {
		if _, err := w.Write([]byte{byte(TagV4Port)}); err != nil {
			return err
		}
		if err := e.encodeAtomField(w, p.Node); err != nil {
			return err
		}
		if err := writeUint64(w, p.ID); err != nil {
			return err
		}
		return writeUint32(w, p.Creation)
	}
	if _, err := w.Write([]byte{byte(TagNewPort)}); err != nil {
		return err
	}
	if err := e.encodeAtomField(w, p.Node); err != nil {
		return err
	}
	if err := writeUint32(w, uint32(p.ID)); err != nil {
		return err
	}
	return writeUint32(w, p.Creation)
}

func (e *Encoder) encodeReference(w io.Writer, r Reference) error {
	if _, err := w.Write([]byte{byte(TagNewerReference)}); err != nil {
		return err
	}
	if err := writeUint16(w, uint16(len(r.ID))); err != nil {
		return err
	}
	if err := e.encodeAtomField(w, r.Node); err != nil {
		return err
	}
	if err := writeUint32(w, r.Creation); err != nil {
		return err
	}
	for _, word := range r.ID {
		if err := writeUint32(w, word); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) encodeExternalFun(w io.Writer, f ExternalFun) error {
	if _, err := w.Write([]byte{byte(TagExport)}); err != nil {
		return err
	}
	if err := e.encodeAtomField(w, f.Module); err != nil {
		return err
	}
	if err := e.encodeAtomField(w, f.Function); err != nil {
		return err
	}
	return e.encodeFixInteger(w, FixInteger(f.Arity))
}

func (e *Encoder) encodeInternalFun(w io.Writer, f InternalFun) error {
	var body bytes.Buffer
	if _, err := body.Write([]byte{f.Arity}); err != nil {
		return err
	}
	if _, err := body.Write(f.Uniq[:]); err != nil {
		return err
	}
	if err := writeUint32(&body, f.Index); err != nil {
		return err
	}
	if err := writeUint32(&body, f.NumFree); err != nil {
		return err
	}
	if err := e.encodeAtomField(&body, f.Module); err != nil {
		return err
	}
	if err := e.encodeFixInteger(&body, FixInteger(f.OldIndex)); err != nil {
		return err
	}
	if err := e.encodeFixInteger(&body, FixInteger(f.OldUniq)); err != nil {
		return err
	}
	if err := e.encodePid(&body, f.Pid); err != nil {
		return err
	}
	for _, fv := range f.FreeVars {
		if err := e.encodeValue(&body, fv); err != nil {
			return err
		}
	}

	if _, err := w.Write([]byte{byte(TagNewFun)}); err != nil {
		return err
	}
	if err := writeUint32(w, uint32(4+body.Len())); err != nil {
		return err
	}
	_, err := w.Write(body.Bytes())
	return err
}

func (e *Encoder) encodeAtomCacheRef(w io.Writer, r AtomCacheRef) error {
	_, err := w.Write([]byte{byte(TagAtomCacheRef), byte(r.Index)})
	return err
}
