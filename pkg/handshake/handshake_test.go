package handshake

import (
	"net"
	"testing"

	"github.com/ZentaChain/erldist/pkg/node"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingAudit struct {
	entries []AuditEntry
}

func (r *recordingAudit) RecordHandshake(e AuditEntry) {
	r.entries = append(r.entries, e)
}

func localNode(t *testing.T, name string) node.LocalNode {
	t.Helper()
	n, err := node.ParseName(name)
	require.NoError(t, err)
	return node.NewLocalNode(n, node.Creation(1))
}

func TestHandshakeHappyPath(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()
	defer serverConn.Close()

	clientLocal := localNode(t, "client@localhost")
	serverLocal := localNode(t, "server@localhost")

	clientAudit := &recordingAudit{}
	serverAudit := &recordingAudit{}

	client := NewClientSideHandshake(clientConn, clientLocal, "cookie123")
	client.Audit = clientAudit
	server := NewServerSideHandshake(serverConn, serverLocal, "cookie123")
	server.Audit = serverAudit

	type clientResult struct {
		peer  node.Name
		flags node.DistributionFlags
		err   error
	}
	clientDone := make(chan clientResult, 1)

	go func() {
		status, err := client.SendName()
		if err != nil {
			clientDone <- clientResult{err: err}
			return
		}
		peer, flags, err := client.Finish(IsAcceptedStatus(status))
		clientDone <- clientResult{peer: peer, flags: flags, err: err}
	}()

	peerName, err := server.RecvName()
	require.NoError(t, err)
	assert.Equal(t, "client@localhost", peerName)

	require.NoError(t, server.SendStatus("ok"))
	serverPeer, serverFlags, err := server.Finish()
	require.NoError(t, err)
	assert.Equal(t, "client@localhost", serverPeer.String())

	res := <-clientDone
	require.NoError(t, res.err)
	assert.Equal(t, "server@localhost", res.peer.String())
	assert.Equal(t, serverFlags, res.flags)
	assert.Equal(t, clientLocal.Flags.Intersect(serverLocal.Flags), res.flags)

	require.Len(t, clientAudit.entries, 1)
	require.Len(t, serverAudit.entries, 1)
}

func TestHandshakeCookieMismatchFails(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()
	defer serverConn.Close()

	client := NewClientSideHandshake(clientConn, localNode(t, "client@localhost"), "right-cookie")
	server := NewServerSideHandshake(serverConn, localNode(t, "server@localhost"), "wrong-cookie")

	clientErrCh := make(chan error, 1)
	go func() {
		status, err := client.SendName()
		if err != nil {
			clientErrCh <- err
			return
		}
		_, _, err = client.Finish(IsAcceptedStatus(status))
		clientErrCh <- err
	}()

	_, err := server.RecvName()
	require.NoError(t, err)
	require.NoError(t, server.SendStatus("ok"))
	_, _, serverErr := server.Finish()
	require.Error(t, serverErr)
	assert.True(t, IsKind(serverErr, KindDigestMismatch))

	// Finish leaves the connection to its caller; closing it after the
	// failed handshake is what ends the client's wait for an ack.
	serverConn.Close()

	clientErr := <-clientErrCh
	require.Error(t, clientErr)
}

func TestHandshakeLegacyClientUpgradesViaComplement(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()
	defer serverConn.Close()

	client := NewClientSideHandshake(clientConn, localNode(t, "client@localhost"), "cookie")
	client.ForceVersion5 = true
	client.PeerSupportsHandshake23 = true
	server := NewServerSideHandshake(serverConn, localNode(t, "server@localhost"), "cookie")
	server.ForceVersion5 = true

	clientDone := make(chan error, 1)
	go func() {
		status, err := client.SendName()
		if err != nil {
			clientDone <- err
			return
		}
		_, _, err = client.Finish(IsAcceptedStatus(status))
		clientDone <- err
	}()

	_, err := server.RecvName()
	require.NoError(t, err)
	require.NoError(t, server.SendStatus("ok"))
	_, serverFlags, err := server.Finish()
	require.NoError(t, err)
	assert.True(t, serverFlags.Has(node.FlagHandshake23))

	require.NoError(t, <-clientDone)
}

func TestHandshakeNotAllowedAbortsWithoutFurtherIO(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()
	defer serverConn.Close()

	client := NewClientSideHandshake(clientConn, localNode(t, "client@localhost"), "cookie")
	server := NewServerSideHandshake(serverConn, localNode(t, "server@localhost"), "cookie")

	clientDone := make(chan error, 1)
	go func() {
		status, err := client.SendName()
		if err != nil {
			clientDone <- err
			return
		}
		_, _, err = client.Finish(IsAcceptedStatus(status))
		clientDone <- err
	}()

	_, err := server.RecvName()
	require.NoError(t, err)
	serverSendErr := server.SendStatus("not_allowed")
	require.Error(t, serverSendErr)
	assert.True(t, IsKind(serverSendErr, KindStatusNotAllowed))

	clientErr := <-clientDone
	require.Error(t, clientErr)
	assert.True(t, IsKind(clientErr, KindStatusNotAllowed))
}
