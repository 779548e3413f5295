package statusapi

import (
	"sync"

	"github.com/ZentaChain/erldist/pkg/channel"
)

// Registry tracks a node's live channels by peer name, for the status
// server to read. It is the one piece of shared state statusapi needs;
// callers register a channel once the handshake that produced it
// completes, and unregister it once the channel closes.
type Registry struct {
	mu       sync.RWMutex
	channels map[string]*channel.Channel
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{channels: make(map[string]*channel.Channel)}
}

// Register associates ch with peer, replacing any previous channel under
// the same name.
func (r *Registry) Register(peer string, ch *channel.Channel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.channels[peer] = ch
}

// Unregister removes peer's channel, if any.
func (r *Registry) Unregister(peer string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.channels, peer)
}

// Get returns peer's channel, if registered.
func (r *Registry) Get(peer string) (*channel.Channel, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ch, ok := r.channels[peer]
	return ch, ok
}

// Snapshot returns a peer-name-to-Stats snapshot of every registered
// channel at the moment of the call.
func (r *Registry) Snapshot() map[string]channel.Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]channel.Stats, len(r.channels))
	for peer, ch := range r.channels {
		out[peer] = ch.Stats()
	}
	return out
}
