package partition

import (
	"sort"
	"strings"
	"sync"

	"github.com/lakerow/rowbinary/internal/hash"
)

// cacheShards is the number of lock stripes in Cache. A fixed power of two
// keeps the shard-selection mask cheap and spreads contention across
// concurrent partition-tuple lookups.
const cacheShards = 32

// Cache interns partition-value tuples (maps of partition-field name to
// string value) so that repeated writes of the same partition share one
// backing map instance. Sharded with one sync.RWMutex per shard: none of the
// reference stacks in this tree ship a concurrent map, so a striped
// sync.RWMutex is the stdlib-only exception here, like the stdlib-only
// MurmurHash3 hashing and the bit-slice index's bitmap.
type Cache struct {
	shards [cacheShards]shard
}

type shard struct {
	mu      sync.RWMutex
	entries map[string]map[string]string
}

// NewCache returns an empty interning cache.
func NewCache() *Cache {
	c := &Cache{}
	for i := range c.shards {
		c.shards[i].entries = make(map[string]map[string]string)
	}

	return c
}

// Intern returns a canonical, shared instance of values, keyed by its
// content. Subsequent calls with an equal tuple return the same map
// instance, avoiding one allocation per duplicate partition tuple.
func (c *Cache) Intern(values map[string]string) map[string]string {
	key := tupleKey(values)

	if v, ok := c.Find(key); ok {
		return v
	}

	owned := make(map[string]string, len(values))
	for k, v := range values {
		owned[k] = v
	}

	return c.Insert(key, owned)
}

// shardFor returns the lock stripe owning key.
func (c *Cache) shardFor(key string) *shard {
	return &c.shards[hash.ID(key)%cacheShards]
}

// Find looks up the tuple interned under key without inserting.
func (c *Cache) Find(key string) (map[string]string, bool) {
	s := c.shardFor(key)

	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.entries[key]

	return v, ok
}

// Insert interns value under key, returning the winning instance: if another
// goroutine already inserted the same key first, that earlier instance is
// returned and value is discarded, so every caller observes one canonical
// instance per key.
func (c *Cache) Insert(key string, value map[string]string) map[string]string {
	s := c.shardFor(key)

	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.entries[key]; ok {
		return v
	}

	s.entries[key] = value

	return value
}

// Erase removes the tuple interned under key, if present.
func (c *Cache) Erase(key string) {
	s := c.shardFor(key)

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
}

// Size returns the total number of tuples interned across all shards.
func (c *Cache) Size() int {
	n := 0
	for i := range c.shards {
		s := &c.shards[i]

		s.mu.RLock()
		n += len(s.entries)
		s.mu.RUnlock()
	}

	return n
}

// tupleKey renders values into a stable, order-independent string so that
// two maps with the same entries intern to the same shard/key regardless of
// Go's randomized map iteration order.
func tupleKey(values map[string]string) string {
	names := make([]string, 0, len(values))
	for k := range values {
		names = append(names, k)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, k := range names {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(values[k])
		b.WriteByte(';')
	}

	return b.String()
}
