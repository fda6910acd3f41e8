// Package cache is the ephemeral result cache: Redis/Valkey when reachable at
// startup, an in-process bounded map otherwise. Cache failures never reach callers.
package cache

import (
	"context"
	"time"
)

// Backend names, used as metric labels.
const (
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Cache stores string values with a TTL. Reads of absent, expired or
// unreachable entries are misses; writes and deletes are best-effort.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration)
	Delete(ctx context.Context, key string)
	Backend() string
}

// Status reports the cache backend for health checks.
type Status struct {
	Backend string
	Healthy bool
}
