package client

import "sync"

// Invalidation tags. Every cached read declares the tags it lives
// under; every mutation names the tags it invalidates.
const (
	tagPackages  = "packages"
	tagProfile   = "profile"
	tagAssets    = "assets"
	tagDirectory = "directory"
	tagRequests  = "requests"
	tagHRQueue   = "requests:hr"
	tagRoster    = "roster"
	tagPayments  = "payments"
)

type cacheEntry struct {
	value any
	tags  []string
}

// queryCache is a pull-based read cache. Fetchers snapshot the
// generation before going to the network; a write whose generation is
// older than the cache's current one is dropped, so a slow response
// never overwrites data invalidated while it was in flight.
type queryCache struct {
	mu         sync.Mutex
	generation uint64
	entries    map[string]cacheEntry
}

func newQueryCache() *queryCache {
	return &queryCache{entries: make(map[string]cacheEntry)}
}

func (qc *queryCache) Generation() uint64 {
	qc.mu.Lock()
	defer qc.mu.Unlock()
	return qc.generation
}

func (qc *queryCache) Get(key string) (any, bool) {
	qc.mu.Lock()
	defer qc.mu.Unlock()
	entry, ok := qc.entries[key]
	if !ok {
		return nil, false
	}
	return entry.value, true
}

// Put stores value under key unless the cache moved past gen. Returns
// whether the value was stored.
func (qc *queryCache) Put(gen uint64, key string, value any, tags ...string) bool {
	qc.mu.Lock()
	defer qc.mu.Unlock()
	if gen != qc.generation {
		return false
	}
	qc.entries[key] = cacheEntry{value: value, tags: tags}
	return true
}

// Invalidate drops every entry carrying any of the given tags and bumps
// the generation.
func (qc *queryCache) Invalidate(tags ...string) {
	qc.mu.Lock()
	defer qc.mu.Unlock()
	qc.generation++
	for key, entry := range qc.entries {
		if hasAnyTag(entry.tags, tags) {
			delete(qc.entries, key)
		}
	}
}

// Clear drops everything, e.g. on sign-in or sign-out.
func (qc *queryCache) Clear() {
	qc.mu.Lock()
	defer qc.mu.Unlock()
	qc.generation++
	qc.entries = make(map[string]cacheEntry)
}

func hasAnyTag(entryTags, tags []string) bool {
	for _, tag := range tags {
		for _, have := range entryTags {
			if tag == have {
				return true
			}
		}
	}
	return false
}

// cached serves key from the cache or runs fetch and stores the result
// under the given tags. Results from a generation invalidated mid-fetch
// are returned to the caller but not cached.
func cached[T any](c *Client, key string, tags []string, fetch func() (T, error)) (T, error) {
	if v, ok := c.cache.Get(key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}
	gen := c.cache.Generation()
	value, err := fetch()
	if err != nil {
		var zero T
		return zero, err
	}
	c.cache.Put(gen, key, value, tags...)
	return value, nil
}
