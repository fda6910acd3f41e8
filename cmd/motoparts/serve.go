package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/cache"
	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/config"
	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/metrics"
	cartrepo "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/repository/cart"
	customerrepo "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/repository/customer"
	orderrepo "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/repository/order"
	partrepo "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/repository/part"
	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/repository/partcache"
	chiTransport "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/transport/chi"
	cartuc "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/usecase/cart"
	cataloguc "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/usecase/catalog"
	customeruc "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/usecase/customer"
	facetuc "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/usecase/facet"
	healthuc "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/usecase/health"
	orderuc "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/usecase/order"
	searchuc "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/usecase/search"
	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/version"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the storefront HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := opts.load()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, logger)
		},
	}
}

func serve(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	logger.Info("Starting motoparts",
		zap.String("version", version.Version),
		zap.String("catalog_driver", cfg.Catalog.Driver),
	)
	metrics.RegisterCatalogMetrics()

	d, err := openCatalog(ctx, cfg.Catalog, cfg.Catalog.AutoMigrate, logger)
	if err != nil {
		return err
	}
	defer func() { _ = d.Close() }()

	sel := cache.Connect(ctx, cacheConfig(cfg.Cache), logger)
	defer sel.Close()
	sel.StartHealthProbe(ctx, time.Duration(cfg.Cache.HealthIntervalSec)*time.Second)

	// Repositories
	b := cfg.Catalog.Breaker
	parts := partrepo.NewGuarded(partrepo.New(d), partrepo.BreakerConfig{
		MaxRequests:  b.MaxRequests,
		Interval:     time.Duration(b.IntervalSec) * time.Second,
		Timeout:      time.Duration(b.TimeoutSec) * time.Second,
		MinRequests:  b.MinRequests,
		FailureRatio: b.FailureRatio,
	}, logger)
	partByID := partcache.New(parts, cfg.Catalog.PartCacheSize, cfg.Catalog.PartCacheTTL(), metrics.PartCacheTotal)
	carts := cartrepo.New(sel.Cache)

	// Order events go over the cache backend's pub/sub when it is networked.
	var publisher orderuc.Publisher
	if sel.Store != nil {
		publisher = sel.Store
	}

	svc := chiTransport.Services{
		Search:    searchuc.New(parts, nil, logger).WithFetchLimit(cfg.Catalog.FetchLimit),
		Facets:    facetuc.New(parts, sel.Cache, logger),
		Catalog:   cataloguc.New(parts, partByID, sel.Cache, logger),
		Carts:     cartuc.New(partByID, carts, logger),
		Orders:    orderuc.New(carts, orderrepo.New(d), publisher, logger),
		Customers: customeruc.New(customerrepo.New(d), logger),
		Health:    healthuc.New(parts, sel),
	}

	server := chiTransport.NewServer(svc, logger)
	handler := server.Routes(chiTransport.RouterConfig{
		CORSOrigins:     cfg.HTTP.CORSOrigins,
		RateLimitPerMin: cfg.HTTP.RateLimitPerMin,
		APIKeys:         cfg.Auth.APIKeys,
	})
	if len(cfg.Auth.APIKeys) == 0 {
		logger.Warn("No admin API keys configured, admin endpoints are disabled")
	}

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		ReadHeaderTimeout: time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout:      time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
	return nil
}
