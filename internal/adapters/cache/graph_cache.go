package cache

import (
	"commute-planner/internal/domain"
	"time"

	"github.com/bluele/gcache"
)

// GraphCache keeps built graphs keyed by schedule version, so a stored
// schedule is parsed once per revision rather than once per request.
// Entries are evicted least recently used first and expire after ttl.
type GraphCache struct {
	c gcache.Cache
}

// NewGraphCache returns a cache holding at most size graphs. A ttl of zero
// keeps entries until they are evicted.
func NewGraphCache(size int, ttl time.Duration) *GraphCache {
	b := gcache.New(size).LRU()
	if ttl > 0 {
		b = b.Expiration(ttl)
	}
	return &GraphCache{c: b.Build()}
}

func (g *GraphCache) Get(version string) (*domain.Graph, bool) {
	v, err := g.c.Get(version)
	if err != nil {
		return nil, false
	}
	graph, ok := v.(*domain.Graph)
	return graph, ok
}

func (g *GraphCache) Put(version string, graph *domain.Graph) {
	if graph == nil {
		return
	}
	_ = g.c.Set(version, graph)
}

// Stats reports lookups served from the cache and lookups that missed.
func (g *GraphCache) Stats() (hits, misses uint64) {
	return g.c.HitCount(), g.c.MissCount()
}

func (g *GraphCache) Len() int {
	return g.c.Len(true)
}
