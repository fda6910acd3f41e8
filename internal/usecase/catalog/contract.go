package catalog

import (
	"context"
	"time"

	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/facet"
	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/part"
	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/search/filter"
)

// PartStore reads lookup projections from the catalog store.
type PartStore interface {
	Find(ctx context.Context, filters filter.Expression, limit int) ([]part.Part, error)
	Distinct(ctx context.Context, field string, filters filter.Expression) ([]string, error)
	FacetRows(ctx context.Context, filters filter.Expression) ([]facet.Row, error)
}

// PartGetter loads a single part, usually through the L1 cache.
type PartGetter interface {
	Get(ctx context.Context, id int64) (part.Part, error)
}

// purger is implemented by part getters that keep their own cache.
type purger interface {
	Purge()
}

// Cache is the result cache consumed by lookups.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration)
	Delete(ctx context.Context, key string)
	Backend() string
}
