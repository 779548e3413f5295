package atomcache

import (
	"bytes"
	"testing"

	"github.com/ZentaChain/erldist/pkg/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableGetSetRoundTrip(t *testing.T) {
	tb := NewTable()
	_, ok := tb.Get(10)
	assert.False(t, ok)

	tb.Set(10, term.Atom("hello"))
	a, ok := tb.Get(10)
	require.True(t, ok)
	assert.Equal(t, term.Atom("hello"), a)
}

func TestTableGetOutOfRange(t *testing.T) {
	tb := NewTable()
	_, ok := tb.Get(-1)
	assert.False(t, ok)
	_, ok = tb.Get(Size)
	assert.False(t, ok)
}

func TestTableReset(t *testing.T) {
	tb := NewTable()
	tb.Set(0, term.Atom("a"))
	tb.Reset()
	_, ok := tb.Get(0)
	assert.False(t, ok)
}

func TestEncodeDecodeUpdateEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeUpdate(&buf, nil))
	assert.Equal(t, []byte{0}, buf.Bytes())

	tb := NewTable()
	refs, err := DecodeUpdate(&buf, tb)
	require.NoError(t, err)
	assert.Nil(t, refs)
}

func TestEncodeDecodeUpdateNewAndHit(t *testing.T) {
	refs := []Ref{
		{Slot: 0, Atom: "foo", New: true},
		{Slot: 300, Atom: "bar", New: true},
		{Slot: 0, Atom: "foo", New: false},
	}
	var buf bytes.Buffer
	require.NoError(t, EncodeUpdate(&buf, refs))

	tb := NewTable()
	got, err := DecodeUpdate(&buf, tb)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, Ref{Slot: 0, Atom: "foo", New: true}, got[0])
	assert.Equal(t, Ref{Slot: 300, Atom: "bar", New: true}, got[1])
	assert.Equal(t, Ref{Slot: 0, Atom: "foo", New: false}, got[2])

	a, ok := tb.Get(300)
	require.True(t, ok)
	assert.Equal(t, term.Atom("bar"), a)
}

func TestEncodeDecodeUpdateLongAtom(t *testing.T) {
	long := make([]byte, 300)
	for i := range long {
		long[i] = 'x'
	}
	refs := []Ref{{Slot: 5, Atom: term.Atom(long), New: true}}

	var buf bytes.Buffer
	require.NoError(t, EncodeUpdate(&buf, refs))

	tb := NewTable()
	got, err := DecodeUpdate(&buf, tb)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, term.Atom(long), got[0].Atom)
}

func TestDecodeUpdateRejectsCacheMiss(t *testing.T) {
	refs := []Ref{{Slot: 42, New: false}}
	var buf bytes.Buffer
	require.NoError(t, EncodeUpdate(&buf, refs))

	tb := NewTable()
	_, err := DecodeUpdate(&buf, tb)
	require.Error(t, err)
	var missErr *CacheMissError
	assert.ErrorAs(t, err, &missErr)
	assert.Equal(t, 42, missErr.Slot)
}

func TestEncodeUpdateRejectsTooManyRefs(t *testing.T) {
	refs := make([]Ref, 256)
	for i := range refs {
		refs[i] = Ref{Slot: i % Size, Atom: term.Atom("a"), New: true}
	}
	err := EncodeUpdate(&bytes.Buffer{}, refs)
	require.Error(t, err)
	var tooMany *TooManyRefsError
	assert.ErrorAs(t, err, &tooMany)
}

func TestSenderSendsAtomTextOnlyOnce(t *testing.T) {
	s := NewSender()
	msg := term.Tuple{term.Atom("ok"), term.FixInteger(1)}

	rewritten1, refs1 := s.Prepare(msg)
	require.Len(t, refs1, 1)
	assert.True(t, refs1[0].New)
	tup1, ok := rewritten1.(term.Tuple)
	require.True(t, ok)
	assert.Equal(t, term.AtomCacheRef{Index: refs1[0].Slot}, tup1[0])

	rewritten2, refs2 := s.Prepare(msg)
	require.Len(t, refs2, 1)
	assert.False(t, refs2[0].New)
	assert.Equal(t, refs1[0].Slot, refs2[0].Slot)
	tup2 := rewritten2.(term.Tuple)
	assert.Equal(t, term.AtomCacheRef{Index: refs1[0].Slot}, tup2[0])
}

func TestSenderDedupesRepeatedAtomWithinOneMessage(t *testing.T) {
	s := NewSender()
	msg := term.ProperList(term.Atom("dup"), term.Atom("dup"))
	_, refs := s.Prepare(msg)
	assert.Len(t, refs, 1)
}

func TestResolveRoundTripsThroughWireUpdate(t *testing.T) {
	sender := NewSender()
	msg := term.Tuple{term.Atom("reply"), term.FixInteger(7)}
	rewritten, refs := sender.Prepare(msg)

	var buf bytes.Buffer
	require.NoError(t, EncodeUpdate(&buf, refs))

	receiverTable := NewTable()
	_, err := DecodeUpdate(&buf, receiverTable)
	require.NoError(t, err)

	resolved, err := Resolve(rewritten, receiverTable)
	require.NoError(t, err)
	assert.Equal(t, msg, resolved)
}

func TestResolveRejectsUnresolvableRef(t *testing.T) {
	tb := NewTable()
	_, err := Resolve(term.AtomCacheRef{Index: 9}, tb)
	require.Error(t, err)
	var missErr *CacheMissError
	assert.ErrorAs(t, err, &missErr)
}
