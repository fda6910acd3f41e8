// Package partcache keeps recently viewed parts in an in-process LRU.
package partcache

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"

	dompart "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/part"
)

// getter is the consumer interface for part lookups (ISP).
type getter interface {
	Get(ctx context.Context, id int64) (dompart.Part, error)
}

// Cached is a read-through decorator for part-by-id lookups.
// Misses and errors are never cached.
type Cached struct {
	inner      getter
	cache      *expirable.LRU[int64, dompart.Part]
	cacheTotal *prometheus.CounterVec
}

// New creates the decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(inner getter, size int, ttl time.Duration, cacheTotal *prometheus.CounterVec) *Cached {
	return &Cached{
		inner:      inner,
		cache:      expirable.NewLRU[int64, dompart.Part](size, nil, ttl),
		cacheTotal: cacheTotal,
	}
}

// Get returns a cached part or loads it from the inner repository.
func (c *Cached) Get(ctx context.Context, id int64) (dompart.Part, error) {
	if p, ok := c.cache.Get(id); ok {
		c.inc("hit")
		return p, nil
	}
	c.inc("miss")

	p, err := c.inner.Get(ctx, id)
	if err != nil {
		return dompart.Part{}, fmt.Errorf("get part %d: %w", id, err)
	}
	c.cache.Add(id, p)
	return p, nil
}

// Purge drops every resident part, e.g. after a catalog import or price change.
func (c *Cached) Purge() {
	c.cache.Purge()
}

// Len returns the number of resident entries.
func (c *Cached) Len() int { return c.cache.Len() }

func (c *Cached) inc(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}
