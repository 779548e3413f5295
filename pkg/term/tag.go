package term

// Tag is the leading byte identifying an encoded term's wire shape.
type Tag byte

// Wire tags, per the External Term Format specification.
const (
	TagNewFloat         Tag = 70
	TagBitBinary        Tag = 77
	TagSmallInteger     Tag = 97
	TagInteger          Tag = 98
	TagFloat            Tag = 99 // legacy ASCII-encoded float
	TagAtom             Tag = 100
	TagReference        Tag = 101 // legacy
	TagPort             Tag = 102
	TagPid              Tag = 103
	TagSmallTuple       Tag = 104
	TagLargeTuple       Tag = 105
	TagNil              Tag = 106
	TagString           Tag = 107
	TagList             Tag = 108
	TagBinary           Tag = 109
	TagSmallBig         Tag = 110
	TagLargeBig         Tag = 111
	TagNewFun           Tag = 112
	TagExport           Tag = 113
	TagNewReference     Tag = 114
	TagSmallAtom        Tag = 115
	TagMap              Tag = 116
	TagFun              Tag = 117
	TagNewPid           Tag = 88
	TagNewPort          Tag = 89
	TagNewerReference   Tag = 90
	TagAtomUTF8         Tag = 118
	TagSmallAtomUTF8    Tag = 119
	TagV4Port           Tag = 120
	TagAtomCacheRef     Tag = 82
)

// VersionMagic is the leading byte of every top-level encoded term.
const VersionMagic byte = 131

// DistributionHeaderFlag is the byte following the version magic in a
// distribution message that carries an atom-cache update section ("D").
const DistributionHeaderFlag byte = 68

// PassThrough is the legacy distribution-message framing marker: when it
// is the first byte of a message body, the rest of the frame is a plain
// versioned term (no atom-cache header).
const PassThrough byte = 112

func (t Tag) String() string {
	switch t {
	case TagNewFloat:
		return "NEW_FLOAT"
	case TagBitBinary:
		return "BIT_BINARY"
	case TagSmallInteger:
		return "SMALL_INTEGER"
	case TagInteger:
		return "INTEGER"
	case TagFloat:
		return "FLOAT"
	case TagAtom:
		return "ATOM"
	case TagReference:
		return "REFERENCE"
	case TagPort:
		return "PORT"
	case TagPid:
		return "PID"
	case TagSmallTuple:
		return "SMALL_TUPLE"
	case TagLargeTuple:
		return "LARGE_TUPLE"
	case TagNil:
		return "NIL"
	case TagString:
		return "STRING"
	case TagList:
		return "LIST"
	case TagBinary:
		return "BINARY"
	case TagSmallBig:
		return "SMALL_BIG"
	case TagLargeBig:
		return "LARGE_BIG"
	case TagNewFun:
		return "NEW_FUN"
	case TagExport:
		return "EXPORT"
	case TagNewReference:
		return "NEW_REFERENCE"
	case TagSmallAtom:
		return "SMALL_ATOM"
	case TagMap:
		return "MAP"
	case TagFun:
		return "FUN"
	case TagNewPid:
		return "NEW_PID"
	case TagNewPort:
		return "NEW_PORT"
	case TagNewerReference:
		return "NEWER_REFERENCE"
	case TagAtomUTF8:
		return "ATOM_UTF8"
	case TagSmallAtomUTF8:
		return "SMALL_ATOM_UTF8"
	case TagV4Port:
		return "V4_PORT"
	case TagAtomCacheRef:
		return "ATOM_CACHE_REF"
	default:
		return "UNKNOWN"
	}
}
