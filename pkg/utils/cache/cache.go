package cache

import (
	"sync"
	"time"
)

// entry holds a cached value with expiration
type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Cache is a key-value store whose entries expire after a fixed TTL.
// The zero value is not usable; create one with New.
type Cache[K comparable, V any] struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[K]entry[V]
}

// Option is a functional option for Cache configuration
type Option func(*config)

type config struct {
	now func() time.Time
}

// WithNow replaces the clock used to compute expiry
func WithNow(now func() time.Time) Option {
	return func(c *config) {
		c.now = now
	}
}

// New creates a cache whose entries live for ttl
func New[K comparable, V any](ttl time.Duration, opts ...Option) *Cache[K, V] {
	cfg := config{now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Cache[K, V]{
		ttl:     ttl,
		now:     cfg.now,
		entries: make(map[K]entry[V]),
	}
}

// Get returns the value for key if present and not expired
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if !e.expiresAt.After(c.now()) {
		delete(c.entries, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key, replacing any previous entry
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry[V]{
		value:     value,
		expiresAt: c.now().Add(c.ttl),
	}
}

// Len returns the number of stored entries, including expired ones not yet evicted
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
