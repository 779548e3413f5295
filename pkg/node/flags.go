package node

// DistributionFlags is the 64-bit capability bitset exchanged during a
// handshake. The set actually used on a connection is the intersection
// of both peers' flags.
type DistributionFlags uint64

// Published distribution protocol capability flags.
const (
	FlagPublished          DistributionFlags = 1 << 0
	FlagAtomCache          DistributionFlags = 1 << 1
	FlagExtendedReferences DistributionFlags = 1 << 2
	FlagDistMonitor        DistributionFlags = 1 << 3
	FlagFunTags            DistributionFlags = 1 << 4
	FlagNewFunTags         DistributionFlags = 1 << 5
	FlagExtendedPidsPorts  DistributionFlags = 1 << 6
	FlagExportPtrTag       DistributionFlags = 1 << 7
	FlagBitBinaries        DistributionFlags = 1 << 8
	FlagNewFloats          DistributionFlags = 1 << 9
	FlagUnicodeIO          DistributionFlags = 1 << 10
	FlagDistHdrAtomCache   DistributionFlags = 1 << 11
	FlagSmallAtomTags      DistributionFlags = 1 << 12
	FlagUTF8Atoms          DistributionFlags = 1 << 13
	FlagMapTag             DistributionFlags = 1 << 14
	FlagBigCreation        DistributionFlags = 1 << 15
	FlagSendSender         DistributionFlags = 1 << 16
	FlagBigSeqtraceLabels  DistributionFlags = 1 << 17
	FlagExitPayload        DistributionFlags = 1 << 18
	FlagFragments          DistributionFlags = 1 << 19

	// The remaining flags were all introduced by later OTP releases and
	// live in the upper half of the 64-bit set; a connection that starts
	// out on the legacy 32-bit 'n' framing only learns about them once
	// the 'c' complement (or a direct 'N' frame) carries the high bits.
	FlagHandshake23       DistributionFlags = 1 << 32
	FlagUnlinkID          DistributionFlags = 1 << 33
	FlagMandatory25Digest DistributionFlags = 1 << 34
	FlagNameMe            DistributionFlags = 1 << 35
	FlagV4NC              DistributionFlags = 1 << 36
	FlagSpawn             DistributionFlags = 1 << 37
	FlagAlias             DistributionFlags = 1 << 38
)

// flagNames preserves the order flags appear above, for String().
var flagNames = []struct {
	flag DistributionFlags
	name string
}{
	{FlagPublished, "PUBLISHED"},
	{FlagAtomCache, "ATOM_CACHE"},
	{FlagExtendedReferences, "EXTENDED_REFERENCES"},
	{FlagDistMonitor, "DIST_MONITOR"},
	{FlagFunTags, "FUN_TAGS"},
	{FlagNewFunTags, "NEW_FUN_TAGS"},
	{FlagExtendedPidsPorts, "EXTENDED_PIDS_PORTS"},
	{FlagExportPtrTag, "EXPORT_PTR_TAG"},
	{FlagBitBinaries, "BIT_BINARIES"},
	{FlagNewFloats, "NEW_FLOATS"},
	{FlagUnicodeIO, "UNICODE_IO"},
	{FlagDistHdrAtomCache, "DIST_HDR_ATOM_CACHE"},
	{FlagSmallAtomTags, "SMALL_ATOM_TAGS"},
	{FlagUTF8Atoms, "UTF8_ATOMS"},
	{FlagMapTag, "MAP_TAG"},
	{FlagBigCreation, "BIG_CREATION"},
	{FlagSendSender, "SEND_SENDER"},
	{FlagBigSeqtraceLabels, "BIG_SEQTRACE_LABELS"},
	{FlagExitPayload, "EXIT_PAYLOAD"},
	{FlagFragments, "FRAGMENTS"},
	{FlagHandshake23, "HANDSHAKE_23"},
	{FlagUnlinkID, "UNLINK_ID"},
	{FlagMandatory25Digest, "MANDATORY_25_DIGEST"},
	{FlagNameMe, "NAME_ME"},
	{FlagV4NC, "V4_NC"},
	{FlagSpawn, "SPAWN"},
	{FlagAlias, "ALIAS"},
}

// DefaultFlags is a recommended capability set for a freshly constructed
// local node. It leaves out SEND_SENDER, BIG_SEQTRACE_LABELS,
// EXIT_PAYLOAD, FRAGMENTS, UNLINK_ID, MANDATORY_25_DIGEST and NAME_ME,
// even where package channel can encode and decode the matching messages.
const DefaultFlags = FlagPublished | FlagAtomCache | FlagExtendedReferences |
	FlagDistMonitor | FlagFunTags | FlagNewFunTags | FlagExtendedPidsPorts |
	FlagExportPtrTag | FlagBitBinaries | FlagNewFloats | FlagUnicodeIO |
	FlagDistHdrAtomCache | FlagSmallAtomTags | FlagUTF8Atoms | FlagMapTag |
	FlagBigCreation | FlagHandshake23 | FlagV4NC | FlagSpawn | FlagAlias

// mandatoryFlagsV5 are required once both peers negotiate version 5.
const mandatoryFlagsV5 = FlagExtendedReferences | FlagExtendedPidsPorts

// mandatoryFlagsV6 adds the version-6-only requirements layered on top
// of the version-5 mandatory set once HANDSHAKE_23 is negotiated.
const mandatoryFlagsV6 = mandatoryFlagsV5 | FlagHandshake23

// Has reports whether f includes every bit set in want.
func (f DistributionFlags) Has(want DistributionFlags) bool {
	return f&want == want
}

// Intersect returns the flags common to f and peer: what a connection
// actually negotiates to use.
func (f DistributionFlags) Intersect(peer DistributionFlags) DistributionFlags {
	return f & peer
}

// MandatoryFor returns the flags a negotiated set must include for the
// given handshake version (5 or 6).
func MandatoryFor(version int) DistributionFlags {
	if version >= 6 {
		return mandatoryFlagsV6
	}
	return mandatoryFlagsV5
}

// Missing returns the subset of want not present in f.
func (f DistributionFlags) Missing(want DistributionFlags) DistributionFlags {
	return want &^ f
}

// String lists the set flag names, "|"-joined, in declaration order.
func (f DistributionFlags) String() string {
	if f == 0 {
		return "(none)"
	}
	out := ""
	for _, e := range flagNames {
		if f.Has(e.flag) {
			if out != "" {
				out += "|"
			}
			out += e.name
		}
	}
	return out
}
