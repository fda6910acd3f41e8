package facet

import (
	"context"
	"time"

	domfacet "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/facet"
	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/search/filter"
)

// RowSource projects facet dimensions from the catalog store.
type RowSource interface {
	FacetRows(ctx context.Context, filters filter.Expression) ([]domfacet.Row, error)
}

// Cache is the result cache consumed by the aggregator.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration)
	Delete(ctx context.Context, key string)
	Backend() string
}
