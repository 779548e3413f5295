package epmd

import (
	"bufio"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/ZentaChain/erldist/pkg/node"
)

// Client talks to one EPMD instance, addressed by Endpoint.
type Client struct {
	Endpoint node.Endpoint
	// DialTimeout bounds connection setup. Zero means no timeout beyond
	// ctx's own deadline.
	DialTimeout time.Duration
}

// NewClient returns a Client addressing the EPMD instance at ep.
func NewClient(ep node.Endpoint) *Client {
	return &Client{Endpoint: ep}
}

func (c *Client) dial(ctx context.Context) (net.Conn, error) {
	d := net.Dialer{Timeout: c.DialTimeout}
	return d.DialContext(ctx, "tcp", c.Endpoint.HostPort())
}

// Registration is a live registration connection. The node stays
// registered with EPMD for as long as Close has not been called; EPMD
// notices the closed socket and removes the entry.
type Registration struct {
	conn     net.Conn
	Creation uint32
}

// Close ends the registration by closing its connection.
func (r *Registration) Close() error {
	return r.conn.Close()
}

// Register opens a registration connection for entry and holds it open.
// The caller must keep the returned Registration alive (and eventually
// Close it) for the process's lifetime as a registered node.
func (c *Client) Register(ctx context.Context, entry NodeEntry) (*Registration, error) {
	conn, err := c.dial(ctx)
	if err != nil {
		return nil, err
	}

	body := []byte{reqAlive2}
	var portBuf [2]byte
	binary.BigEndian.PutUint16(portBuf[:], uint16(entry.Port))
	body = append(body, portBuf[:]...)
	body = append(body, byte(entry.NodeType), byte(entry.Protocol))

	var hv, lv [2]byte
	binary.BigEndian.PutUint16(hv[:], entry.HighestVersion)
	binary.BigEndian.PutUint16(lv[:], entry.LowestVersion)
	body = append(body, hv[:]...)
	body = append(body, lv[:]...)

	var nlen [2]byte
	binary.BigEndian.PutUint16(nlen[:], uint16(len(entry.Name)))
	body = append(body, nlen[:]...)
	body = append(body, entry.Name...)

	var elen [2]byte
	binary.BigEndian.PutUint16(elen[:], uint16(len(entry.ExtraBytes)))
	body = append(body, elen[:]...)
	body = append(body, entry.ExtraBytes...)

	if err := writeRequest(conn, body); err != nil {
		conn.Close()
		return nil, err
	}

	tag, err := readByte(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	if tag != respAlive2 && tag != respAlive2Extended {
		conn.Close()
		return nil, &UnexpectedTagError{Want: respAlive2, Got: tag}
	}

	result, err := readByte(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	if result != 0 {
		conn.Close()
		return nil, &RegistrationError{Result: result}
	}

	var creation uint32
	if tag == respAlive2Extended {
		creation, err = readUint32(conn)
	} else {
		var c16 uint16
		c16, err = readUint16(conn)
		creation = uint32(c16)
	}
	if err != nil {
		conn.Close()
		return nil, err
	}

	return &Registration{conn: conn, Creation: creation}, nil
}

// GetNode looks up name. It returns a *NotFoundError if EPMD has no such
// registration.
func (c *Client) GetNode(ctx context.Context, name string) (NodeEntry, error) {
	conn, err := c.dial(ctx)
	if err != nil {
		return NodeEntry{}, err
	}
	defer conn.Close()

	body := append([]byte{reqPortPlease2}, name...)
	if err := writeRequest(conn, body); err != nil {
		return NodeEntry{}, err
	}

	r := bufio.NewReader(conn)
	tag, err := readByte(r)
	if err != nil {
		return NodeEntry{}, err
	}
	if tag != respPort2 {
		return NodeEntry{}, &UnexpectedTagError{Want: respPort2, Got: tag}
	}

	result, err := readByte(r)
	if err != nil {
		return NodeEntry{}, err
	}
	if result != 0 {
		return NodeEntry{}, &NotFoundError{Name: name}
	}

	portU16, err := readUint16(r)
	if err != nil {
		return NodeEntry{}, err
	}
	nodeType, err := readByte(r)
	if err != nil {
		return NodeEntry{}, err
	}
	proto, err := readByte(r)
	if err != nil {
		return NodeEntry{}, err
	}
	hv, err := readUint16(r)
	if err != nil {
		return NodeEntry{}, err
	}
	lv, err := readUint16(r)
	if err != nil {
		return NodeEntry{}, err
	}
	nodeName, err := readString16(r)
	if err != nil {
		return NodeEntry{}, err
	}
	extraLen, err := readUint16(r)
	if err != nil {
		return NodeEntry{}, err
	}
	extra, err := readFull(r, int(extraLen))
	if err != nil {
		return NodeEntry{}, err
	}

	return NodeEntry{
		Name:           nodeName,
		Port:           int(portU16),
		NodeType:       NodeType(nodeType),
		Protocol:       Protocol(proto),
		HighestVersion: hv,
		LowestVersion:  lv,
		ExtraBytes:     extra,
	}, nil
}

// NamedNode is one line of a Names() listing.
type NamedNode struct {
	Name string
	Port int
}

// Names lists every node currently registered with EPMD.
func (c *Client) Names(ctx context.Context) ([]NamedNode, error) {
	conn, err := c.dial(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if err := writeRequest(conn, []byte{reqNames}); err != nil {
		return nil, err
	}

	r := bufio.NewReader(conn)
	if _, err := readUint32(r); err != nil { // EPMD's own port, unused here
		return nil, err
	}

	text, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return parseNamesText(string(text)), nil
}

// Dump asks EPMD for its full internal dump text.
func (c *Client) Dump(ctx context.Context) (string, error) {
	conn, err := c.dial(ctx)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	if err := writeRequest(conn, []byte{reqDump}); err != nil {
		return "", err
	}

	r := bufio.NewReader(conn)
	if _, err := readUint32(r); err != nil {
		return "", err
	}
	text, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(text), nil
}

// Kill asks EPMD to exit. It returns nil if EPMD replied "OK".
func (c *Client) Kill(ctx context.Context) error {
	conn, err := c.dial(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := writeRequest(conn, []byte{reqKill}); err != nil {
		return err
	}

	reply, err := readFull(conn, 2)
	if err != nil {
		return err
	}
	if string(reply) != "OK" {
		return fmt.Errorf("epmd: kill refused: %q", reply)
	}
	return nil
}
