// Package statusapi exposes a read-only HTTP view over a node's live
// message channels: per-peer and total frame/tick/byte counters at
// GET /status, and per-peer detail at GET /status/channels/:peer.
package statusapi
