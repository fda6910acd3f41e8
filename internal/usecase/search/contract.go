package search

import (
	"context"

	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/part"
	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/search/filter"
)

// PartFetcher reads structurally filtered candidates from the catalog store.
// Results are in store order and capped at limit.
type PartFetcher interface {
	Find(ctx context.Context, filters filter.Expression, limit int) ([]part.Part, error)
}
