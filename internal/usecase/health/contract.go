package health

import (
	"context"

	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/cache"
)

// CatalogPinger checks catalog store availability.
type CatalogPinger interface {
	Ping(ctx context.Context) error
}

// CacheReporter reports the result cache backend in use.
type CacheReporter interface {
	Status() cache.Status
}
