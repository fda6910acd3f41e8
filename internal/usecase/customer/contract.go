package customer

import (
	"context"

	domcustomer "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/customer"
)

// Repository persists customers and profiles.
type Repository interface {
	UpsertCustomer(ctx context.Context, c domcustomer.Customer) error
	GetCustomer(ctx context.Context, userID int64) (domcustomer.Customer, error)
	UpsertProfile(ctx context.Context, p domcustomer.Profile) error
	GetProfile(ctx context.Context, userID int64) (domcustomer.Profile, error)
}
