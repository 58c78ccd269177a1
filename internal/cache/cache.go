// Package cache provides a pluggable byte cache used to hold fetched
// transcripts and caption track lists. Backends register themselves under
// a provider name; callers pick one through the factory.
package cache

// EvictCallback is called when an entry is evicted. Only backends with
// application-level eviction (memory) support it; Redis expires entries
// server-side.
type EvictCallback func(key string, value []byte)

// Logger receives error reports from cache backends. A nil logger
// silences them.
type Logger interface {
	Error(msg string, err error)
}

// Cache is a key-value byte cache with TTL semantics.
type Cache interface {
	// Get retrieves a value by key. The second return is false on a miss.
	Get(key string) ([]byte, bool)

	// Set stores a value under key, overwriting any existing entry.
	Set(key string, value []byte)

	// Contains reports whether key is present without touching
	// recency ordering.
	Contains(key string) bool

	// Len returns the current number of entries.
	Len() int

	// Close releases backend resources. A no-op for in-memory caches.
	Close() error
}
