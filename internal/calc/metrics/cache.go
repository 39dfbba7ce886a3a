package metrics

import (
	"sync"

	"github.com/golang/groupcache/lru"

	"Whirligig/internal/blade"
)

// Cache memoizes Calculate by parameter set. Parameters is a comparable
// value so it is used as the key directly.
type Cache struct {
	mu     sync.Mutex
	lru    *lru.Cache
	hits   uint64
	misses uint64
}

type entry struct {
	m   DerivedMetrics
	err error
}

// NewCache returns a cache holding up to size entries. A size <= 0 disables
// eviction.
func NewCache(size int) *Cache {
	if size < 0 {
		size = 0
	}
	return &Cache{lru: lru.New(size)}
}

func (c *Cache) Calculate(p blade.Parameters) (DerivedMetrics, error) {
	if c == nil {
		return Calculate(p)
	}
	c.mu.Lock()
	if v, ok := c.lru.Get(p); ok {
		c.hits++
		c.mu.Unlock()
		e := v.(entry)
		return e.m, e.err
	}
	c.misses++
	c.mu.Unlock()

	m, err := Calculate(p)

	c.mu.Lock()
	c.lru.Add(p, entry{m: m, err: err})
	c.mu.Unlock()
	return m, err
}

type Stats struct {
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
	Len    int    `json:"len"`
}

func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Hits: c.hits, Misses: c.misses, Len: c.lru.Len()}
}
