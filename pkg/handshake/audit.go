package handshake

import (
	"time"

	"github.com/ZentaChain/erldist/pkg/node"
)

// AuditEntry describes one completed (successful) handshake, for
// injection into an AuditRecorder.
type AuditEntry struct {
	PeerName  string
	Flags     node.DistributionFlags
	Creation  node.Creation
	Timestamp time.Time
}

// AuditRecorder is notified of successful handshakes. Recording is
// best-effort from the handshake's point of view: a recorder that
// returns an error or blocks is the recorder's own problem, never the
// handshake's — callers needing that guarantee should make their
// recorder non-blocking internally (e.g. a buffered channel).
type AuditRecorder interface {
	RecordHandshake(entry AuditEntry)
}
