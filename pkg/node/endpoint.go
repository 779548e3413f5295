package node

import (
	"fmt"
	"net"
	"strconv"

	"github.com/multiformats/go-multiaddr"
)

// Endpoint is a dial target for EPMD or a peer node, carried as a
// multiaddr so it can be logged, compared and round-tripped through
// configuration without a bespoke "host:port" parser — the same
// addressing convention this codebase's other peer-facing components
// use.
type Endpoint struct {
	addr multiaddr.Multiaddr
}

// NewEndpointTCP4 builds an Endpoint for a dotted-quad or DNS host and a
// TCP port, e.g. NewEndpointTCP4("127.0.0.1", 4369) or
// NewEndpointTCP4("localhost", 4369).
func NewEndpointTCP4(host string, port int) (Endpoint, error) {
	proto := "ip4"
	if net.ParseIP(host) == nil {
		proto = "dns4"
	}
	s := fmt.Sprintf("/%s/%s/tcp/%d", proto, host, port)
	return ParseEndpoint(s)
}

// ParseEndpoint parses a multiaddr string such as "/ip4/127.0.0.1/tcp/4369"
// or "/dns4/epmd.example.com/tcp/4369".
func ParseEndpoint(s string) (Endpoint, error) {
	addr, err := multiaddr.NewMultiaddr(s)
	if err != nil {
		return Endpoint{}, fmt.Errorf("node: invalid endpoint %q: %w", s, err)
	}
	if _, err := addr.ValueForProtocol(multiaddr.P_TCP); err != nil {
		return Endpoint{}, fmt.Errorf("node: endpoint %q has no tcp component: %w", s, err)
	}
	return Endpoint{addr: addr}, nil
}

// Multiaddr returns the underlying multiaddr.Multiaddr.
func (e Endpoint) Multiaddr() multiaddr.Multiaddr {
	return e.addr
}

// Host returns the dial host: the ip4 or dns4 component.
func (e Endpoint) Host() string {
	if h, err := e.addr.ValueForProtocol(multiaddr.P_IP4); err == nil {
		return h
	}
	if h, err := e.addr.ValueForProtocol(multiaddr.P_DNS4); err == nil {
		return h
	}
	return ""
}

// Port returns the dial TCP port.
func (e Endpoint) Port() int {
	p, err := e.addr.ValueForProtocol(multiaddr.P_TCP)
	if err != nil {
		return 0
	}
	port, err := strconv.Atoi(p)
	if err != nil {
		return 0
	}
	return port
}

// HostPort renders a "host:port" string suitable for net.Dial.
func (e Endpoint) HostPort() string {
	return net.JoinHostPort(e.Host(), strconv.Itoa(e.Port()))
}

// String returns the multiaddr text form.
func (e Endpoint) String() string {
	if e.addr == nil {
		return ""
	}
	return e.addr.String()
}
