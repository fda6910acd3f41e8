package cart

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain"
	domcart "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/cart"
	logpkg "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/logger"
)

// Service manages session carts.
type Service struct {
	parts  PartGetter
	store  Store
	logger *zap.Logger
}

// New creates a cart service.
func New(parts PartGetter, store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{parts: parts, store: store, logger: logger}
}

// Add puts quantity units of a part into the user's cart, snapshotting the
// part's name, brand, model, price and image.
func (s *Service) Add(ctx context.Context, userID, partID int64, quantity int) (domcart.Cart, error) {
	if err := validUser(userID); err != nil {
		return domcart.Cart{}, err
	}

	p, err := s.parts.Get(ctx, partID)
	if err != nil {
		return domcart.Cart{}, fmt.Errorf("load part %d: %w", partID, err)
	}

	c := s.store.Load(ctx, userID)
	err = c.Add(domcart.Item{
		PartID:   p.ID(),
		Quantity: quantity,
		Name:     p.Name(),
		Brand:    p.Brand(),
		Model:    p.Model(),
		Price:    p.Price(),
		ImageURL: p.ImageURL(),
	})
	if err != nil {
		return domcart.Cart{}, err
	}
	if quantity > p.Stock() {
		logpkg.FromContext(ctx, s.logger).Info("cart quantity exceeds stock",
			zap.Int64("user_id", userID), zap.Int64("part_id", partID),
			zap.Int("quantity", quantity), zap.Int("stock", p.Stock()))
	}

	s.store.Save(ctx, &c)
	return c, nil
}

// View returns the user's cart, empty when none exists.
func (s *Service) View(ctx context.Context, userID int64) (domcart.Cart, error) {
	if err := validUser(userID); err != nil {
		return domcart.Cart{}, err
	}
	return s.store.Load(ctx, userID), nil
}

// Remove drops one part from the user's cart.
func (s *Service) Remove(ctx context.Context, userID, partID int64) (domcart.Cart, error) {
	if err := validUser(userID); err != nil {
		return domcart.Cart{}, err
	}
	c := s.store.Load(ctx, userID)
	if !c.Remove(partID) {
		return domcart.Cart{}, fmt.Errorf("part %d in cart: %w", partID, domain.ErrNotFound)
	}
	s.store.Save(ctx, &c)
	return c, nil
}

// Clear empties the user's cart.
func (s *Service) Clear(ctx context.Context, userID int64) error {
	if err := validUser(userID); err != nil {
		return err
	}
	s.store.Clear(ctx, userID)
	return nil
}

func validUser(userID int64) error {
	if userID <= 0 {
		return domain.NewValidationError("user_id", "must be positive")
	}
	return nil
}
