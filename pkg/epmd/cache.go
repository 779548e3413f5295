package epmd

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru"
)

// cachedEntry pairs a NodeEntry with the time it was fetched, so a
// caller-supplied TTL can decide whether it is still trustworthy.
type cachedEntry struct {
	entry    NodeEntry
	fetchedAt time.Time
}

// LookupCache wraps a Client's GetNode in a bounded LRU keyed by node
// name, to avoid a round trip to EPMD for every lookup of a hot name.
// EPMD remains the source of truth: a cache miss, or an entry older than
// TTL, always falls through to a live GetNode call.
type LookupCache struct {
	client *Client
	cache  *lru.Cache
	ttl    time.Duration
}

// NewLookupCache wraps client with an LRU of the given size (entries)
// and ttl (how long a cached entry is trusted before a fresh lookup is
// forced). A zero ttl disables the freshness check, trusting any cached
// entry until evicted.
func NewLookupCache(client *Client, size int, ttl time.Duration) (*LookupCache, error) {
	c, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &LookupCache{client: client, cache: c, ttl: ttl}, nil
}

// GetNode returns a cached entry for name if one is present and within
// ttl, otherwise performs a live lookup and caches the result.
func (lc *LookupCache) GetNode(ctx context.Context, name string) (NodeEntry, error) {
	if v, ok := lc.cache.Get(name); ok {
		ce := v.(cachedEntry)
		if lc.ttl == 0 || time.Since(ce.fetchedAt) < lc.ttl {
			return ce.entry, nil
		}
		lc.cache.Remove(name)
	}

	entry, err := lc.client.GetNode(ctx, name)
	if err != nil {
		return NodeEntry{}, err
	}
	lc.cache.Add(name, cachedEntry{entry: entry, fetchedAt: time.Now()})
	return entry, nil
}

// Invalidate drops any cached entry for name.
func (lc *LookupCache) Invalidate(name string) {
	lc.cache.Remove(name)
}
