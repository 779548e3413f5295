package channel

import (
	"net"
	"testing"
	"time"

	"github.com/ZentaChain/erldist/pkg/node"
	"github.com/ZentaChain/erldist/pkg/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pidFor(nodeName string, id uint32) term.Pid {
	return term.Pid{Node: term.Atom(nodeName), ID: id, Serial: 0, Creation: 1}
}

func TestChannelSendRecvWithAtomCache(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()
	defer serverConn.Close()

	flags := node.FlagDistHdrAtomCache | node.FlagAtomCache

	client := NewChannel(clientConn, flags, time.Hour)
	server := NewChannel(serverConn, flags, time.Hour)

	msg := RegSend{
		From:   pidFor("client@localhost", 1),
		Unused: term.Atom(""),
		ToName: term.Atom("my_server"),
	}
	msg.Message = term.ProperList(term.Atom("hello"), term.FixInteger(42))

	done := make(chan error, 1)
	go func() { done <- client.Send(msg) }()

	got, err := server.Recv()
	require.NoError(t, err)
	require.NoError(t, <-done)

	rs, ok := got.(RegSend)
	require.True(t, ok)
	assert.Equal(t, msg.From, rs.From)
	assert.Equal(t, msg.ToName, rs.ToName)
	assert.Equal(t, msg.Message, rs.Message)

	stats := server.Stats()
	assert.Equal(t, uint64(1), stats.FramesReceived)
}

func TestChannelSendRecvWithoutAtomCache(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()
	defer serverConn.Close()

	client := NewChannel(clientConn, 0, time.Hour)
	server := NewChannel(serverConn, 0, time.Hour)

	msg := Link{From: pidFor("a@host", 1), To: pidFor("b@host", 2)}

	done := make(chan error, 1)
	go func() { done <- client.Send(msg) }()

	got, err := server.Recv()
	require.NoError(t, err)
	require.NoError(t, <-done)
	assert.Equal(t, msg, got)
}

func TestChannelTickIsConsumedNotSurfaced(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()
	defer serverConn.Close()

	client := NewChannel(clientConn, 0, time.Hour)
	server := NewChannel(serverConn, 0, time.Hour)

	msg := Unlink{From: pidFor("a@host", 1), To: pidFor("b@host", 2)}

	go func() {
		_ = client.SendTick()
		_ = client.Send(msg)
	}()

	got, err := server.Recv()
	require.NoError(t, err)
	assert.Equal(t, msg, got)

	stats := server.Stats()
	assert.Equal(t, uint64(1), stats.TicksReceived)
	assert.Equal(t, uint64(1), stats.FramesReceived)
}

func TestChannelUnknownControlKindIsFatal(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()
	defer serverConn.Close()

	server := NewChannel(serverConn, 0, time.Hour)

	go func() {
		ctrl := term.Tuple{term.FixInteger(9999)}
		body, _ := term.EncodeToBytes(ctrl)
		frame := append([]byte{passThroughMarker}, body...)
		_ = writeFrame(clientConn, frame)
	}()

	_, err := server.Recv()
	require.Error(t, err)
	assert.True(t, IsKind(err, ErrUnknownKind))
	assert.ErrorIs(t, server.Err(), err)
}

func TestChannelRoundTripsAllSimpleKinds(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()
	defer serverConn.Close()

	client := NewChannel(clientConn, 0, time.Hour)
	server := NewChannel(serverConn, 0, time.Hour)

	p1 := pidFor("a@host", 1)
	p2 := pidFor("b@host", 2)
	ref := term.Reference{Node: term.Atom("a@host"), Creation: 1, ID: []uint32{7}}

	msgs := []Message{
		Link{From: p1, To: p2},
		Exit{From: p1, To: p2, Reason: term.Atom("normal")},
		Unlink{From: p1, To: p2},
		NodeLink{},
		GroupLeader{From: p1, To: p2},
		Exit2{From: p1, To: p2, Reason: term.Atom("killed")},
		MonitorP{From: p1, To: p2, Ref: ref},
		DemonitorP{From: p1, To: p2, Ref: ref},
		MonitorPExit{From: p1, To: p2, Ref: ref, Reason: term.Atom("noproc")},
		UnlinkId{ID: 5, From: p1, To: p2},
		UnlinkIdAck{ID: 5, From: p1, To: p2},
	}

	go func() {
		for _, m := range msgs {
			if err := client.Send(m); err != nil {
				return
			}
		}
	}()

	for _, want := range msgs {
		got, err := server.Recv()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestChannelCloseStopsTickGoroutines(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()
	defer serverConn.Close()

	c := NewChannel(clientConn, 0, 10*time.Millisecond)
	c.RunTicks()
	time.Sleep(30 * time.Millisecond)
	require.NoError(t, c.Close())
	assert.Error(t, c.Err())
}
