package term

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildAtomBody encodes an atom body using the given legacy tag, without a
// version magic, for embedding in hand-built legacy structures below.
func buildAtomBody(tag Tag, s string) []byte {
	var out []byte
	out = append(out, byte(tag))
	if tag == TagSmallAtom || tag == TagSmallAtomUTF8 {
		out = append(out, byte(len(s)))
	} else {
		out = append(out, byte(len(s)>>8), byte(len(s)))
	}
	out = append(out, []byte(s)...)
	return out
}

func TestLegacyAtomTagsDecodeToAtom(t *testing.T) {
	for _, tag := range []Tag{TagAtom, TagSmallAtom, TagAtomUTF8, TagSmallAtomUTF8} {
		body := buildAtomBody(tag, "hello")
		buf := append([]byte{VersionMagic}, body...)
		got, err := DecodeFromBytes(buf)
		require.NoError(t, err, "tag %v", tag)
		assert.Equal(t, Atom("hello"), got, "tag %v", tag)
	}
}

func TestLegacyFloatDecodesToModernForm(t *testing.T) {
	// Legacy FLOAT is 31 bytes: an ASCII "%.20e"-ish rendering, NUL padded.
	s := "3.14000000000000012434e+00"
	body := make([]byte, 31)
	copy(body, s)
	buf := append([]byte{VersionMagic, byte(TagFloat)}, body...)

	got, err := DecodeFromBytes(buf)
	require.NoError(t, err)
	f, ok := got.(Float)
	require.True(t, ok)
	assert.InDelta(t, 3.14, float64(f), 1e-9)
}

func TestLegacyPidDecodesToWidenedPid(t *testing.T) {
	var buf []byte
	buf = append(buf, VersionMagic, byte(TagPid))
	buf = append(buf, buildAtomBody(TagSmallAtomUTF8, "foo@localhost")...)
	buf = append(buf, 0, 0, 0, 42) // ID
	buf = append(buf, 0, 0, 0, 0)  // Serial
	buf = append(buf, 7)           // Creation, 1 byte legacy

	got, err := DecodeFromBytes(buf)
	require.NoError(t, err)
	pid, ok := got.(Pid)
	require.True(t, ok)
	assert.Equal(t, Pid{Node: Atom("foo@localhost"), ID: 42, Serial: 0, Creation: 7}, pid)
}

func TestLegacyPortDecodesToWidenedPort(t *testing.T) {
	var buf []byte
	buf = append(buf, VersionMagic, byte(TagPort))
	buf = append(buf, buildAtomBody(TagSmallAtomUTF8, "foo@localhost")...)
	buf = append(buf, 0, 0, 0, 99) // ID
	buf = append(buf, 3)           // Creation, 1 byte

	got, err := DecodeFromBytes(buf)
	require.NoError(t, err)
	port, ok := got.(Port)
	require.True(t, ok)
	assert.Equal(t, Port{Node: Atom("foo@localhost"), ID: 99, Creation: 3}, port)
}

func TestLegacyReferenceDecodesToWidenedReference(t *testing.T) {
	var buf []byte
	buf = append(buf, VersionMagic, byte(TagReference))
	buf = append(buf, buildAtomBody(TagSmallAtomUTF8, "foo@localhost")...)
	buf = append(buf, 0, 0, 0, 77) // single legacy ID word
	buf = append(buf, 5)           // Creation, 1 byte

	got, err := DecodeFromBytes(buf)
	require.NoError(t, err)
	ref, ok := got.(Reference)
	require.True(t, ok)
	assert.Equal(t, Reference{Node: Atom("foo@localhost"), Creation: 5, ID: []uint32{77}}, ref)
}

func TestStringTagDecodesToIntegerList(t *testing.T) {
	buf := []byte{VersionMagic, byte(TagString), 0, 3, 'a', 'b', 'c'}
	got, err := DecodeFromBytes(buf)
	require.NoError(t, err)
	list, ok := got.(List)
	require.True(t, ok)
	assert.Equal(t, []Term{FixInteger('a'), FixInteger('b'), FixInteger('c')}, list.Elements)
	assert.Equal(t, Nil{}, list.Tail)
}

func TestEncodeNeverEmitsStringTag(t *testing.T) {
	v := ProperList(FixInteger('a'), FixInteger('b'))
	b, err := EncodeToBytes(v)
	require.NoError(t, err)
	for _, by := range b {
		assert.NotEqual(t, byte(TagString), by)
	}
}
