// Package handshake implements the Erlang distribution handshake: the
// name/flags exchange, version negotiation between protocol 5 and the
// HANDSHAKE_23 version-6 upgrade, and cookie-based challenge/response
// authentication that precedes a message channel.
//
// ClientSideHandshake and ServerSideHandshake are the two symmetric
// FSM halves; both are driven by calling their methods in sequence
// against a shared io.ReadWriter, typically a net.Conn.
package handshake
