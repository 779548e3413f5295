package epmd

import (
	"context"
	"encoding/binary"
	"io"
	"net"
	"testing"
	"time"

	"github.com/ZentaChain/erldist/pkg/node"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// listenOnce starts a one-shot TCP listener and runs handle against the
// first accepted connection in a background goroutine.
func listenOnce(t *testing.T, handle func(conn net.Conn)) node.Endpoint {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })

	go func() {
		conn, err := l.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		handle(conn)
	}()

	addr := l.Addr().(*net.TCPAddr)
	ep, err := node.NewEndpointTCP4("127.0.0.1", addr.Port)
	require.NoError(t, err)
	return ep
}

func readRequest(t *testing.T, conn net.Conn) []byte {
	t.Helper()
	var lenBuf [2]byte
	_, err := io.ReadFull(conn, lenBuf[:])
	require.NoError(t, err)
	n := binary.BigEndian.Uint16(lenBuf[:])
	body := make([]byte, n)
	_, err = io.ReadFull(conn, body)
	require.NoError(t, err)
	return body
}

func TestClientGetNodeSuccess(t *testing.T) {
	ep := listenOnce(t, func(conn net.Conn) {
		body := readRequest(t, conn)
		assert.Equal(t, byte(reqPortPlease2), body[0])
		assert.Equal(t, "x", string(body[1:]))

		var resp []byte
		resp = append(resp, respPort2, 0)
		var portBuf [2]byte
		binary.BigEndian.PutUint16(portBuf[:], 41301)
		resp = append(resp, portBuf[:]...)
		resp = append(resp, 77, 0) // type, proto
		var hv, lv [2]byte
		binary.BigEndian.PutUint16(hv[:], 6)
		binary.BigEndian.PutUint16(lv[:], 5)
		resp = append(resp, hv[:]...)
		resp = append(resp, lv[:]...)
		var nlen [2]byte
		binary.BigEndian.PutUint16(nlen[:], 1)
		resp = append(resp, nlen[:]...)
		resp = append(resp, 'x')
		resp = append(resp, 0, 0) // extra len
		conn.Write(resp)
	})

	client := NewClient(ep)
	entry, err := client.GetNode(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, 41301, entry.Port)
	assert.Equal(t, uint16(6), entry.HighestVersion)
	assert.Equal(t, uint16(5), entry.LowestVersion)
}

func TestClientGetNodeNotFound(t *testing.T) {
	ep := listenOnce(t, func(conn net.Conn) {
		readRequest(t, conn)
		conn.Write([]byte{respPort2, 1})
	})

	client := NewClient(ep)
	_, err := client.GetNode(context.Background(), "ghost")
	require.Error(t, err)
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestClientRegisterSuccess(t *testing.T) {
	ep := listenOnce(t, func(conn net.Conn) {
		body := readRequest(t, conn)
		assert.Equal(t, byte(reqAlive2), body[0])

		var creationBuf [4]byte
		binary.BigEndian.PutUint32(creationBuf[:], 7)
		resp := append([]byte{respAlive2Extended, 0}, creationBuf[:]...)
		conn.Write(resp)
		time.Sleep(50 * time.Millisecond) // keep the connection open briefly
	})

	client := NewClient(ep)
	reg, err := client.Register(context.Background(), NodeEntry{
		Name:           "foo",
		Port:           9999,
		NodeType:       NodeTypeNormal,
		Protocol:       ProtoTCPIPv4,
		HighestVersion: 6,
		LowestVersion:  5,
	})
	require.NoError(t, err)
	assert.Equal(t, uint32(7), reg.Creation)
	require.NoError(t, reg.Close())
}

func TestClientRegisterRefused(t *testing.T) {
	ep := listenOnce(t, func(conn net.Conn) {
		readRequest(t, conn)
		conn.Write([]byte{respAlive2, 1, 0, 0})
	})

	client := NewClient(ep)
	_, err := client.Register(context.Background(), NodeEntry{Name: "foo", Port: 9999})
	require.Error(t, err)
	var regErr *RegistrationError
	assert.ErrorAs(t, err, &regErr)
}

func TestClientNames(t *testing.T) {
	ep := listenOnce(t, func(conn net.Conn) {
		readRequest(t, conn)
		var portBuf [4]byte
		binary.BigEndian.PutUint32(portBuf[:], 4369)
		conn.Write(portBuf[:])
		conn.Write([]byte("name foo at port 41001\nname bar at port 41002\n"))
	})

	client := NewClient(ep)
	names, err := client.Names(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []NamedNode{{Name: "foo", Port: 41001}, {Name: "bar", Port: 41002}}, names)
}

func TestClientKillSuccess(t *testing.T) {
	ep := listenOnce(t, func(conn net.Conn) {
		readRequest(t, conn)
		conn.Write([]byte("OK"))
	})

	client := NewClient(ep)
	require.NoError(t, client.Kill(context.Background()))
}

func TestLookupCacheServesFromCacheWithinTTL(t *testing.T) {
	calls := 0
	ep := listenOnce(t, func(conn net.Conn) {
		readRequest(t, conn)
		calls++
		var resp []byte
		resp = append(resp, respPort2, 0)
		var portBuf [2]byte
		binary.BigEndian.PutUint16(portBuf[:], 41301)
		resp = append(resp, portBuf[:]...)
		resp = append(resp, 77, 0, 0, 6, 0, 5, 0, 1, 'x', 0, 0)
		conn.Write(resp)
	})

	client := NewClient(ep)
	cache, err := NewLookupCache(client, 10, time.Minute)
	require.NoError(t, err)

	e1, err := cache.GetNode(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, 41301, e1.Port)

	e2, err := cache.GetNode(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, e1, e2)
	assert.Equal(t, 1, calls)
}
