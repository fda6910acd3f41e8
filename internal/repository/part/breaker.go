package part

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain"
	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/facet"
	dompart "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/part"
	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/search/filter"
	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/metrics"
)

// reader is the read side of the part repository guarded by the breaker.
type reader interface {
	Find(ctx context.Context, filters filter.Expression, limit int) ([]dompart.Part, error)
	Get(ctx context.Context, id int64) (dompart.Part, error)
	FacetRows(ctx context.Context, filters filter.Expression) ([]facet.Row, error)
	Distinct(ctx context.Context, field string, filters filter.Expression) ([]string, error)
	Ping(ctx context.Context) error
}

// BreakerConfig tunes the catalog store circuit breaker.
type BreakerConfig struct {
	Name         string
	MaxRequests  uint32        // probes allowed in half-open state
	Interval     time.Duration // closed-state count reset period
	Timeout      time.Duration // open-state wait before half-open
	MinRequests  uint32        // requests before the failure ratio is considered
	FailureRatio float64
}

// Guarded wraps the part repository with a circuit breaker so a dead store
// fails fast with domain.ErrStoreUnavailable.
type Guarded struct {
	inner  reader
	cb     *gobreaker.CircuitBreaker[any]
	name   string
	logger *zap.Logger
}

// NewGuarded wraps inner with a circuit breaker.
func NewGuarded(inner reader, cfg BreakerConfig, logger *zap.Logger) *Guarded {
	if cfg.Name == "" {
		cfg.Name = "catalog-store"
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	metrics.StoreBreakerState.WithLabelValues(cfg.Name).Set(0)

	g := &Guarded{inner: inner, name: cfg.Name, logger: logger}
	g.cb = gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= cfg.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Catalog store breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			metrics.StoreBreakerState.WithLabelValues(name).Set(stateValue(to))
		},
		// Lookups that miss or are malformed say nothing about store health.
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, domain.ErrPartNotFound) ||
				errors.Is(err, domain.ErrInvalidRequest) ||
				errors.Is(err, context.Canceled)
		},
	})
	return g
}

// State returns the current breaker state name.
func (g *Guarded) State() string { return g.cb.State().String() }

// Find implements search.PartFetcher.
func (g *Guarded) Find(ctx context.Context, filters filter.Expression, limit int) ([]dompart.Part, error) {
	return execute(g, func() ([]dompart.Part, error) { return g.inner.Find(ctx, filters, limit) })
}

// Get returns a part by id.
func (g *Guarded) Get(ctx context.Context, id int64) (dompart.Part, error) {
	return execute(g, func() (dompart.Part, error) { return g.inner.Get(ctx, id) })
}

// FacetRows projects facet dimensions.
func (g *Guarded) FacetRows(ctx context.Context, filters filter.Expression) ([]facet.Row, error) {
	return execute(g, func() ([]facet.Row, error) { return g.inner.FacetRows(ctx, filters) })
}

// Distinct returns distinct values of a field.
func (g *Guarded) Distinct(ctx context.Context, field string, filters filter.Expression) ([]string, error) {
	return execute(g, func() ([]string, error) { return g.inner.Distinct(ctx, field, filters) })
}

// Ping bypasses the breaker so health checks always reach the store.
func (g *Guarded) Ping(ctx context.Context) error {
	return g.inner.Ping(ctx) //nolint:wrapcheck // repository already wraps
}

func execute[T any](g *Guarded, fn func() (T, error)) (T, error) {
	var zero T
	res, err := g.cb.Execute(func() (any, error) { return fn() })
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return zero, fmt.Errorf("%s: %w: %w", g.name, domain.ErrStoreUnavailable, err)
		}
		if errors.Is(err, domain.ErrPartNotFound) || errors.Is(err, domain.ErrInvalidRequest) {
			return zero, err
		}
		return zero, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	typed, ok := res.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", res)
	}
	return typed, nil
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
