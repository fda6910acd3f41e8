package cart

import (
	"context"

	domcart "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/cart"
	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/part"
)

// PartGetter loads the part being added.
type PartGetter interface {
	Get(ctx context.Context, id int64) (part.Part, error)
}

// Store persists carts.
type Store interface {
	Load(ctx context.Context, userID int64) domcart.Cart
	Save(ctx context.Context, c *domcart.Cart)
	Clear(ctx context.Context, userID int64)
}
