package customer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain"
	domcustomer "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/customer"
	logpkg "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/logger"
)

// Service registers customers and keeps their delivery profiles.
type Service struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

// New creates a customer service.
func New(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// Register upserts a customer and returns the stored record.
func (s *Service) Register(ctx context.Context, userID int64, username, firstName string) (domcustomer.Customer, error) {
	c, err := domcustomer.NewCustomer(userID, username, firstName, s.now())
	if err != nil {
		return domcustomer.Customer{}, err
	}
	if err := s.repo.UpsertCustomer(ctx, c); err != nil {
		return domcustomer.Customer{}, fmt.Errorf("save customer: %w", err)
	}
	return s.repo.GetCustomer(ctx, userID)
}

// Profile returns the delivery profile of a customer.
func (s *Service) Profile(ctx context.Context, userID int64) (domcustomer.Profile, error) {
	if userID <= 0 {
		return domcustomer.Profile{}, domain.NewValidationError("user_id", "must be positive")
	}
	return s.repo.GetProfile(ctx, userID)
}

// SaveProfile validates and upserts a delivery profile.
func (s *Service) SaveProfile(ctx context.Context, userID int64, fullName, phone, address string) (domcustomer.Profile, error) {
	p, err := domcustomer.NewProfile(userID, fullName, phone, address, s.now())
	if err != nil {
		return domcustomer.Profile{}, err
	}
	if err := s.repo.UpsertProfile(ctx, p); err != nil {
		return domcustomer.Profile{}, fmt.Errorf("save profile: %w", err)
	}
	logpkg.FromContext(ctx, s.logger).Info("profile saved", zap.Int64("user_id", userID))
	return p, nil
}
