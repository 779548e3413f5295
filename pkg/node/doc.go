// Package node models distribution node identity: the {name, host} pair
// parsed from an Erlang-style "name@host" string, the per-incarnation
// Creation token, the DistributionFlags capability bitset negotiated
// during a handshake, and Endpoint, the multiaddr-backed address used to
// dial EPMD or a peer node.
package node
