package order

import (
	"context"
	"time"

	domcart "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/cart"
	domorder "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/order"
)

// CartStore reads and clears the cart an order is placed from.
type CartStore interface {
	Load(ctx context.Context, userID int64) domcart.Cart
	Clear(ctx context.Context, userID int64)
}

// Repository persists orders.
type Repository interface {
	Insert(ctx context.Context, o domorder.Order) (domorder.Order, error)
	Get(ctx context.Context, id int64) (domorder.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]domorder.Order, error)
	List(ctx context.Context, status domorder.Status, limit int) ([]domorder.Order, error)
	UpdateStatus(ctx context.Context, id int64, status domorder.Status, at time.Time) error
}

// Publisher broadcasts order events. Optional.
type Publisher interface {
	Publish(ctx context.Context, channel string, message []byte) error
}
