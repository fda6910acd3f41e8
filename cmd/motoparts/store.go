package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/cache"
	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/config"
	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/db/sqldb"
)

// openCatalog connects to the catalog store and applies pending migrations
// when migrate is true.
func openCatalog(ctx context.Context, cfg config.CatalogConfig, migrate bool, logger *zap.Logger) (*sqldb.DB, error) {
	d, err := sqldb.Open(ctx, sqldb.Config{
		Driver:          cfg.Driver,
		DSN:             cfg.DSN,
		MaxOpenConns:    cfg.MaxOpenConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime(),
	})
	if err != nil {
		return nil, fmt.Errorf("open catalog store: %w", err)
	}

	if migrate {
		v, err := d.Migrate(ctx)
		if err != nil {
			_ = d.Close()
			return nil, fmt.Errorf("migrate catalog store: %w", err)
		}
		logger.Info("Catalog schema ready",
			zap.String("driver", cfg.Driver),
			zap.Int("version", v),
			zap.Int("latest", sqldb.LatestVersion()),
		)
	}
	return d, nil
}

func cacheConfig(c config.CacheConfig) cache.Config {
	return cache.Config{
		Addrs:          c.Addrs,
		Username:       c.Username,
		Password:       c.Password,
		DB:             c.DB,
		TLS:            c.TLS,
		DialTimeout:    time.Duration(c.DialTimeoutSec) * time.Second,
		HealthInterval: time.Duration(c.HealthIntervalSec) * time.Second,
		MaxEntries:     c.MaxEntries,
		EvictBatch:     c.EvictBatch,
	}
}
