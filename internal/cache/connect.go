package cache

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/db/redis"
	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/metrics"
)

// DefaultDialTimeout bounds the startup attempt to reach the networked backend.
const DefaultDialTimeout = 5 * time.Second

// Config selects and tunes the cache backend.
type Config struct {
	Addrs          []string
	Username       string
	Password       string
	DB             int
	TLS            bool
	DialTimeout    time.Duration
	HealthInterval time.Duration
	MaxEntries     int
	EvictBatch     int
}

// Selected is the cache chosen at startup. Store is nil when the in-process
// fallback is in use.
type Selected struct {
	Cache Cache
	Store *redis.Store
	redis *Redis
}

// Connect tries the networked backend once and falls back to the in-process
// cache on any failure (no address, refused, auth, timeout). The choice holds
// for the process lifetime.
func Connect(ctx context.Context, cfg Config, logger *zap.Logger) *Selected {
	if logger == nil {
		logger = zap.NewNop()
	}

	store, err := dial(ctx, cfg)
	if err != nil {
		logger.Warn("Cache backend unavailable, using in-memory fallback",
			zap.Strings("addrs", cfg.Addrs),
			zap.Error(err),
		)
		metrics.CacheBackendUp.WithLabelValues(BackendRedis).Set(0)
		return Fallback(cfg)
	}

	logger.Info("Cache backend connected", zap.Strings("addrs", cfg.Addrs))
	r := NewRedis(store, logger)
	return &Selected{Cache: r, Store: store, redis: r}
}

// Fallback returns the in-process cache.
func Fallback(cfg Config) *Selected {
	metrics.CacheBackendUp.WithLabelValues(BackendMemory).Set(1)
	return &Selected{Cache: NewMemory(cfg.MaxEntries, cfg.EvictBatch)}
}

func dial(ctx context.Context, cfg Config) (*redis.Store, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("no cache address configured")
	}
	timeout := cfg.DialTimeout
	if timeout <= 0 {
		timeout = DefaultDialTimeout
	}

	store, err := redis.NewStore(redis.Config{
		Addrs:       cfg.Addrs,
		Username:    cfg.Username,
		Password:    cfg.Password,
		DB:          cfg.DB,
		TLS:         cfg.TLS,
		DialTimeout: timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	// A backend still loading its dataset gets the rest of the dial window.
	if err := store.WaitForReady(ctx, timeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return store, nil
}

// StartHealthProbe runs the periodic backend probe in the background.
// No-op for the in-process fallback.
func (s *Selected) StartHealthProbe(ctx context.Context, interval time.Duration) {
	if s.redis == nil || interval <= 0 {
		return
	}
	go s.redis.RunHealthProbe(ctx, interval)
}

// Status reports the backend in use and whether it answered its last probe.
func (s *Selected) Status() Status {
	if s.redis == nil {
		return Status{Backend: BackendMemory, Healthy: true}
	}
	return Status{Backend: BackendRedis, Healthy: s.redis.Healthy()}
}

// Close releases the networked connection, if any.
func (s *Selected) Close() {
	if s.Store != nil {
		s.Store.Close()
	}
}
