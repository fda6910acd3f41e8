package facet

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/cache"
	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain"
	domfacet "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/facet"
	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/search/filter"
)

// Cache key and lifetime of the aggregated facet set.
const (
	CacheKey = "advanced_filters"
	CacheTTL = time.Hour
)

// Service aggregates filter facets with a read-through cache.
type Service struct {
	rows   RowSource
	cache  Cache
	logger *zap.Logger
}

// New creates a facet service.
func New(rows RowSource, c Cache, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{rows: rows, cache: c, logger: logger}
}

// Facets returns the cached facet set, computing and caching it on a miss.
// A store failure yields the empty set, which is not cached.
func (s *Service) Facets(ctx context.Context) domfacet.Set {
	if set, ok := cache.GetJSON[domfacet.Set](ctx, s.cache, CacheKey); ok {
		return normalize(set)
	}

	rows, err := s.rows.FacetRows(ctx, filter.Expression{})
	if err != nil {
		s.logger.Warn("Facet projection failed, returning empty facets", zap.Error(err))
		domain.DegradationFromContext(ctx).Mark("store_unavailable")
		return domfacet.Empty()
	}

	set := domfacet.Build(rows)
	cache.SetJSON(ctx, s.cache, CacheKey, set, CacheTTL)
	return set
}

// Invalidate drops the cached facet set (after catalog imports).
func (s *Service) Invalidate(ctx context.Context) {
	s.cache.Delete(ctx, CacheKey)
}

// normalize replaces nil members decoded from a cached document.
func normalize(s domfacet.Set) domfacet.Set {
	empty := domfacet.Empty()
	if s.Brands == nil {
		s.Brands = empty.Brands
	}
	if s.Categories == nil {
		s.Categories = empty.Categories
	}
	if s.Years == nil {
		s.Years = empty.Years
	}
	if s.ModelsByBrand == nil {
		s.ModelsByBrand = empty.ModelsByBrand
	}
	return s
}
