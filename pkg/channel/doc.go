// Package channel implements the post-handshake distribution message
// channel (§4.5): 4-byte length-prefixed frames carrying either a tick
// (zero-length frame, keepalive) or a distribution message, each a
// control tuple selecting one of the protocol's ~30 message kinds plus an
// optional payload term.
package channel
