package cache

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/metrics"
)

// Fallback sizing.
const (
	DefaultMaxEntries = 1000
	DefaultEvictBatch = 100
)

type memEntry struct {
	key     string
	value   string
	expires time.Time // zero means no expiry
}

// Memory is the in-process fallback cache. Entries are kept in insertion
// order; once the count exceeds maxEntries the evictBatch oldest insertions
// are dropped. Overwriting a key keeps its original position. Expired entries
// are removed when read.
type Memory struct {
	mu         sync.Mutex
	items      map[string]*list.Element
	order      *list.List
	maxEntries int
	evictBatch int
	now        func() time.Time
}

// NewMemory creates a fallback cache. Non-positive sizes use the defaults.
func NewMemory(maxEntries, evictBatch int) *Memory {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	if evictBatch <= 0 {
		evictBatch = DefaultEvictBatch
	}
	return &Memory{
		items:      make(map[string]*list.Element),
		order:      list.New(),
		maxEntries: maxEntries,
		evictBatch: evictBatch,
		now:        time.Now,
	}
}

// Backend implements Cache.
func (m *Memory) Backend() string { return BackendMemory }

// Get implements Cache.
func (m *Memory) Get(_ context.Context, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	el, ok := m.items[key]
	if !ok {
		metrics.CacheRequestsTotal.WithLabelValues(BackendMemory, "miss").Inc()
		return "", false
	}
	e := el.Value.(*memEntry) //nolint:forcetypeassert // list holds only *memEntry
	if !e.expires.IsZero() && !m.now().Before(e.expires) {
		m.remove(el)
		metrics.CacheRequestsTotal.WithLabelValues(BackendMemory, "miss").Inc()
		return "", false
	}
	metrics.CacheRequestsTotal.WithLabelValues(BackendMemory, "hit").Inc()
	return e.value, true
}

// Set implements Cache. A non-positive ttl stores the entry without expiry.
func (m *Memory) Set(_ context.Context, key, value string, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var expires time.Time
	if ttl > 0 {
		expires = m.now().Add(ttl)
	}

	if el, ok := m.items[key]; ok {
		e := el.Value.(*memEntry) //nolint:forcetypeassert // list holds only *memEntry
		e.value = value
		e.expires = expires
		// Overwrites keep their insertion position and the entry count.
		metrics.CacheEntries.Set(float64(m.order.Len()))
		return
	}

	m.items[key] = m.order.PushBack(&memEntry{key: key, value: value, expires: expires})

	if m.order.Len() > m.maxEntries {
		for i := 0; i < m.evictBatch && m.order.Len() > 0; i++ {
			m.remove(m.order.Front())
		}
	}
	metrics.CacheEntries.Set(float64(m.order.Len()))
}

// Delete implements Cache.
func (m *Memory) Delete(_ context.Context, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if el, ok := m.items[key]; ok {
		m.remove(el)
	}
}

// Len returns the number of resident entries, expired ones included.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.order.Len()
}

func (m *Memory) remove(el *list.Element) {
	e := m.order.Remove(el).(*memEntry) //nolint:forcetypeassert // list holds only *memEntry
	delete(m.items, e.key)
	metrics.CacheEntries.Set(float64(m.order.Len()))
}
