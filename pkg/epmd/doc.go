// Package epmd implements the client side of the Erlang Port Mapper
// Daemon protocol: register a node's listening port, look up a peer's
// port by name, list registered names, dump the daemon's internal
// state, and ask it to exit.
//
// Every operation but Register opens a connection, writes one framed
// request, reads one response, and closes. Register's connection must
// stay open for the node's lifetime; the returned Registration owns it.
package epmd
