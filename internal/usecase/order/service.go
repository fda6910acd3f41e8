package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain"
	domorder "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/order"
	logpkg "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/logger"
	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/metrics"
)

// DefaultListLimit caps the admin order listing.
const DefaultListLimit = 200

// PlaceRequest carries the delivery details of a new order.
type PlaceRequest struct {
	UserID   int64
	FullName string
	Phone    string
	Address  string
	Notes    string
}

// Service places and tracks orders.
type Service struct {
	carts     CartStore
	orders    Repository
	publisher Publisher
	logger    *zap.Logger
	now       func() time.Time
	newID     func() string
}

// New creates an order service. publisher may be nil.
func New(carts CartStore, orders Repository, publisher Publisher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		carts:     carts,
		orders:    orders,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
		newID:     func() string { return strings.ReplaceAll(uuid.NewString(), "-", "") },
	}
}

// Place turns the user's cart into a pending order, then clears the cart.
func (s *Service) Place(ctx context.Context, req PlaceRequest) (domorder.Order, error) {
	if req.UserID <= 0 {
		return domorder.Order{}, domain.NewValidationError("user_id", "must be positive")
	}

	c := s.carts.Load(ctx, req.UserID)
	if c.IsEmpty() {
		return domorder.Order{}, domain.ErrCartEmpty
	}

	items := c.Items()
	lines := make([]domorder.Line, len(items))
	for i, it := range items {
		lines[i] = domorder.Line{
			PartID: it.PartID,
			Item:   it.Name,
			Qty:    it.Quantity,
			Brand:  it.Brand,
			Model:  it.Model,
			Price:  it.Price,
		}
	}

	now := s.now()
	o, err := domorder.New(domorder.Reference(now, req.UserID, s.newID()), req.UserID, lines,
		req.FullName, req.Phone, req.Address, req.Notes, now)
	if err != nil {
		return domorder.Order{}, err
	}

	saved, err := s.orders.Insert(ctx, o)
	if err != nil {
		return domorder.Order{}, fmt.Errorf("save order: %w", err)
	}

	s.carts.Clear(ctx, req.UserID)
	metrics.OrdersPlacedTotal.Inc()
	logpkg.FromContext(ctx, s.logger).Info("order placed",
		zap.String("reference", saved.Reference()),
		zap.Int64("user_id", saved.UserID()),
		zap.Int("lines", len(lines)),
		zap.Float64("total", saved.Total()))
	s.publish(ctx, EventPlaced, &saved)
	return saved, nil
}

// ListByUser returns a customer's orders, newest first.
func (s *Service) ListByUser(ctx context.Context, userID int64) ([]domorder.Order, error) {
	if userID <= 0 {
		return nil, domain.NewValidationError("user_id", "must be positive")
	}
	out, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders of %d: %w", userID, err)
	}
	return out, nil
}

// List returns all orders, newest first. An empty status lists every status.
func (s *Service) List(ctx context.Context, status string, limit int) ([]domorder.Order, error) {
	var st domorder.Status
	if status != "" {
		var err error
		if st, err = domorder.ParseStatus(status); err != nil {
			return nil, err
		}
	}
	if limit <= 0 || limit > DefaultListLimit {
		limit = DefaultListLimit
	}
	out, err := s.orders.List(ctx, st, limit)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return out, nil
}

// UpdateStatus moves an order to a new status and announces the change.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) (domorder.Order, error) {
	next, err := domorder.ParseStatus(status)
	if err != nil {
		return domorder.Order{}, err
	}

	o, err := s.orders.Get(ctx, id)
	if err != nil {
		return domorder.Order{}, err
	}
	now := s.now()
	if err := o.Transition(next, now); err != nil {
		return domorder.Order{}, err
	}
	if err := s.orders.UpdateStatus(ctx, id, next, now); err != nil {
		return domorder.Order{}, fmt.Errorf("update order %d: %w", id, err)
	}

	logpkg.FromContext(ctx, s.logger).Info("order status changed",
		zap.String("reference", o.Reference()),
		zap.String("status", string(next)))
	s.publish(ctx, EventStatusChanged, &o)
	return o, nil
}

// publish is best-effort: the order is already committed.
func (s *Service) publish(ctx context.Context, typ string, o *domorder.Order) {
	if s.publisher == nil {
		return
	}
	msg, err := newEvent(typ, o).encode()
	if err != nil {
		logpkg.FromContext(ctx, s.logger).Warn("encode order event failed", zap.Error(err))
		return
	}
	if err := s.publisher.Publish(ctx, Channel, msg); err != nil {
		logpkg.FromContext(ctx, s.logger).Warn("publish order event failed",
			zap.String("reference", o.Reference()), zap.Error(err))
	}
}
