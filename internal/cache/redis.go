package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/db"
	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/metrics"
)

// kvStore is the consumer interface for the networked backend (ISP).
type kvStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

// Redis is the networked cache backend. Errors are logged and swallowed:
// a failed read is a miss, a failed write is dropped.
type Redis struct {
	store  kvStore
	logger *zap.Logger
	up     atomic.Bool
}

// NewRedis wraps a connected key-value store.
func NewRedis(store kvStore, logger *zap.Logger) *Redis {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Redis{store: store, logger: logger}
	r.setUp(true)
	return r
}

// Backend implements Cache.
func (r *Redis) Backend() string { return BackendRedis }

// Get implements Cache.
func (r *Redis) Get(ctx context.Context, key string) (string, bool) {
	data, err := r.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			metrics.CacheRequestsTotal.WithLabelValues(BackendRedis, "miss").Inc()
			return "", false
		}
		metrics.CacheRequestsTotal.WithLabelValues(BackendRedis, "error").Inc()
		r.logger.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
		return "", false
	}
	metrics.CacheRequestsTotal.WithLabelValues(BackendRedis, "hit").Inc()
	return string(data), true
}

// Set implements Cache. A non-positive ttl stores the entry without expiry.
func (r *Redis) Set(ctx context.Context, key, value string, ttl time.Duration) {
	var err error
	if ttl > 0 {
		err = r.store.SetWithTTL(ctx, key, []byte(value), ttl)
	} else {
		err = r.store.Set(ctx, key, []byte(value))
	}
	if err != nil {
		r.logger.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// Delete implements Cache.
func (r *Redis) Delete(ctx context.Context, key string) {
	if err := r.store.Del(ctx, key); err != nil {
		r.logger.Warn("Cache delete failed", zap.String("key", key), zap.Error(err))
	}
}

// Healthy reports the result of the last probe.
func (r *Redis) Healthy() bool { return r.up.Load() }

// Probe pings the backend once and records the result.
func (r *Redis) Probe(ctx context.Context) bool {
	err := r.store.Ping(ctx)
	healthy := err == nil
	if healthy != r.up.Load() {
		if healthy {
			r.logger.Info("Cache backend recovered")
		} else {
			r.logger.Warn("Cache backend unreachable", zap.Error(err))
		}
	}
	r.setUp(healthy)
	return healthy
}

// RunHealthProbe pings the backend every interval until ctx is done.
// It only reports; the backend is never swapped at runtime.
func (r *Redis) RunHealthProbe(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(ctx, interval/2)
			r.Probe(probeCtx)
			cancel()
		}
	}
}

func (r *Redis) setUp(up bool) {
	r.up.Store(up)
	v := 0.0
	if up {
		v = 1
	}
	metrics.CacheBackendUp.WithLabelValues(BackendRedis).Set(v)
}
