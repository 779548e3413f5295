package auditlog

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/ZentaChain/erldist/pkg/handshake"
	"github.com/ZentaChain/erldist/pkg/node"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audit.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndQueryHandshake(t *testing.T) {
	s := openTestStore(t)

	entry := handshake.AuditEntry{
		PeerName:  "peer@host",
		Flags:     node.FlagPublished | node.FlagHandshake23,
		Creation:  node.Creation(42),
		Timestamp: time.Unix(1700000000, 0).UTC(),
	}
	require.NoError(t, s.RecordHandshakeErr(entry))

	rows, err := s.Recent("peer@host", 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "peer@host", rows[0].PeerName)
	assert.Equal(t, uint64(entry.Flags), rows[0].Flags)
	assert.Equal(t, uint32(42), rows[0].Creation)
	assert.Equal(t, entry.Timestamp.Unix(), rows[0].Timestamp)
}

func TestRecentOrdersNewestFirstAndRespectsLimit(t *testing.T) {
	s := openTestStore(t)

	base := time.Unix(1700000000, 0).UTC()
	for i := 0; i < 5; i++ {
		entry := handshake.AuditEntry{
			PeerName:  "peer@host",
			Flags:     node.DefaultFlags,
			Creation:  node.Creation(1),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, s.RecordHandshakeErr(entry))
	}

	rows, err := s.Recent("peer@host", 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.True(t, rows[0].Timestamp > rows[1].Timestamp)
}

func TestRecordHandshakeNeverPanicsOnFailure(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Close())

	assert.NotPanics(t, func() {
		s.RecordHandshake(handshake.AuditEntry{PeerName: "x@y", Timestamp: time.Now()})
	})
}
