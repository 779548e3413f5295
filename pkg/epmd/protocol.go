package epmd

// Request bytes, per the EPMD wire protocol.
const (
	reqAlive2      = 120
	reqPortPlease2 = 122
	reqNames       = 110
	reqDump        = 100
	reqKill        = 107
)

// Response tags.
const (
	respAlive2         = 121 // 16-bit creation
	respAlive2Extended = 118 // 32-bit creation
	respPort2          = 119
)

// NodeType is the registered node's EPMD node-type byte.
type NodeType byte

const (
	NodeTypeHidden NodeType = 72 // 'H'
	NodeTypeNormal NodeType = 77 // 'M'
)

// Protocol is the EPMD "protocol" byte; only TCP/IPv4 is published.
type Protocol byte

const ProtoTCPIPv4 Protocol = 0
