// Package cart persists session carts in the result cache.
package cart

import (
	"context"
	"strconv"
	"time"

	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/cache"
	domcart "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/cart"
)

// TTL is how long an untouched cart survives.
const TTL = 24 * time.Hour

const keyPrefix = "cart:"

// Repo stores carts as JSON documents under cart:{user_id}.
type Repo struct {
	cache cache.Cache
}

// New creates a cart repository.
func New(c cache.Cache) *Repo {
	return &Repo{cache: c}
}

// Key returns the cache key of a user's cart.
func Key(userID int64) string {
	return keyPrefix + strconv.FormatInt(userID, 10)
}

// Load returns the user's cart, empty when absent or expired.
func (r *Repo) Load(ctx context.Context, userID int64) domcart.Cart {
	items, ok := cache.GetJSON[[]itemDTO](ctx, r.cache, Key(userID))
	if !ok {
		return domcart.New(userID)
	}
	return fromDTO(userID, items)
}

// Save writes the cart and restarts its TTL. An empty cart is deleted.
func (r *Repo) Save(ctx context.Context, c *domcart.Cart) {
	if c.IsEmpty() {
		r.Clear(ctx, c.UserID())
		return
	}
	cache.SetJSON(ctx, r.cache, Key(c.UserID()), toDTO(c), TTL)
}

// Clear removes the user's cart.
func (r *Repo) Clear(ctx context.Context, userID int64) {
	r.cache.Delete(ctx, Key(userID))
}
