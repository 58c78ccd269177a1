package cache

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// ProviderConfig holds everything a backend needs to construct itself.
type ProviderConfig struct {
	// Size is the maximum number of entries for LRU-bounded backends.
	Size int

	// TTL is the time-to-live for cache entries.
	TTL time.Duration

	// OnEvict is called when an entry is evicted, where supported.
	OnEvict EvictCallback

	// Logger receives backend error reports. May be nil.
	Logger Logger

	// RedisAddress is the Redis/Valkey server address, e.g. "localhost:6379".
	RedisAddress string

	// RedisPassword is the password for the Redis/Valkey server.
	RedisPassword string

	// RedisDB is the Redis/Valkey database number.
	RedisDB int

	// Group labels Prometheus cache metrics. When non-empty the cache is
	// wrapped with hit/miss/eviction counters and an entries gauge.
	Group string
}

// Provider constructs a Cache from config.
type Provider func(cfg ProviderConfig) (Cache, error)

var (
	mu        sync.RWMutex
	providers = make(map[string]Provider)
)

// Register registers a backend under name. It panics on a nil provider
// or a duplicate name.
func Register(name string, p Provider) {
	mu.Lock()
	defer mu.Unlock()

	if p == nil {
		panic("cache: Register provider is nil")
	}
	if _, exists := providers[name]; exists {
		panic(fmt.Sprintf("cache: provider %q already registered", name))
	}
	providers[name] = p
}

// New creates a Cache using the named backend. With a non-empty
// cfg.Group the cache is wrapped with metric instrumentation: hits,
// misses, and evictions are counted under a "cache" label equal to
// Group, and an entries collector reports Len() at scrape time.
func New(name string, cfg ProviderConfig) (Cache, error) {
	mu.RLock()
	p, ok := providers[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("cache: unknown provider %q (registered: %v)", name, RegisteredProviders())
	}

	if cfg.Group == "" {
		return p(cfg)
	}

	group := cfg.Group
	// Count evictions in the cache layer so backends stay metric-free.
	original := cfg.OnEvict
	cfg.OnEvict = func(key string, value []byte) {
		EvictionsTotal.WithLabelValues(group).Inc()
		if original != nil {
			original(key, value)
		}
	}

	inner, err := p(cfg)
	if err != nil {
		return nil, err
	}

	return newInstrumentedCache(inner, group), nil
}

// RegisteredProviders returns a sorted list of registered backend names.
func RegisteredProviders() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
