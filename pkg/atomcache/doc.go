// Package atomcache implements the per-connection, per-direction atom
// cache used by distribution messages (§4.2): a 2048-slot table letting a
// repeated atom ride the wire as a 1- or 2-byte cache reference instead of
// its full text after the first time it is sent.
//
// Table is the passive, slot-addressed store both directions read and
// write. Sender tracks which atoms have already been assigned a slot on
// this connection and rewrites outbound terms to reference them; Resolve
// reverses that on the receive side once a cache-update section has been
// applied to a Table.
package atomcache
