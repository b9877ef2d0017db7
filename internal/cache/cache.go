// Package cache provides the namespaced read-through result cache for
// listing queries. Invalidation is coarse-grained: a mutation bumps the
// namespace generation, orphaning every key minted under the previous
// generation; orphans age out through the TTL/LRU backing store. Computing
// the exact set of affected keys is not worth the complexity at this scale.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Cache memoizes arbitrary JSON-serializable results keyed by namespace,
// generation and a digest of the request parameters. Entries expire after
// the configured TTL. Safe for concurrent use.
type Cache struct {
	mu          sync.Mutex
	generations map[string]uint64

	store *expirable.LRU[string, []byte]
}

// New creates a Cache holding at most size entries, each expiring after ttl.
func New(size int, ttl time.Duration) *Cache {
	return &Cache{
		generations: make(map[string]uint64),
		store:       expirable.NewLRU[string, []byte](size, nil, ttl),
	}
}

// Key builds the cache key for a namespace from its parts. The acting
// username must be one of the parts: two users never share an entry even
// for identical parameters, because their access conditions differ.
func (c *Cache) Key(namespace string, parts ...any) (string, error) {
	payload, err := json.Marshal(parts)
	if err != nil {
		return "", fmt.Errorf("cache: marshal key parts: %w", err)
	}

	sum := sha256.Sum256(payload)
	return fmt.Sprintf("%s:%d:%s", namespace, c.generation(namespace), hex.EncodeToString(sum[:])), nil
}

// Get returns the cached value for key, unmarshalled into dest.
func (c *Cache) Get(key string, dest any) bool {
	data, ok := c.store.Get(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		// A payload that no longer unmarshals is treated as a miss.
		c.store.Remove(key)
		return false
	}
	return true
}

// Set stores value under key. Marshal failures drop the entry silently;
// the cache is an optimization, not a source of truth.
func (c *Cache) Set(key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.store.Add(key, data)
}

// Invalidate retires every key minted for the namespace by bumping its
// generation.
func (c *Cache) Invalidate(namespace string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generations[namespace]++
}

// Purge drops every entry across all namespaces.
func (c *Cache) Purge() {
	c.store.Purge()
}

func (c *Cache) generation(namespace string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[namespace]
}

// CanonicalUsername folds an acting username for key construction so that
// case variants of the same account share entries.
func CanonicalUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
