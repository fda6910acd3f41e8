package chi

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain"
	logpkg "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/logger"
	healthuc "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/usecase/health"
	orderuc "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/usecase/order"
)

const defaultCartQuantity = 1

// AddToCart handles POST /api/cart/add.
func (s *Server) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if err := decodeBody(r, &req); err != nil {
		s.handleRequestError(w, r, err)
		return
	}
	r = r.WithContext(logpkg.With(r.Context(), zap.Int64("user_id", req.UserID)))
	qty := defaultCartQuantity
	if req.Quantity != nil {
		qty = *req.Quantity
	}
	if _, err := s.svc.Carts.Add(r.Context(), req.UserID, req.PartID, qty); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, successResponse{Success: true, Message: "Item added to cart"})
}

// GetCart handles GET /api/cart/{user_id}.
func (s *Server) GetCart(w http.ResponseWriter, r *http.Request) {
	var userID int64
	if err := pathParam(r, "user_id", &userID); err != nil {
		s.handleRequestError(w, r, err)
		return
	}
	c, err := s.svc.Carts.View(r.Context(), userID)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, cartToResponse(&c))
}

// RemoveCartItem handles DELETE /api/cart/{user_id}/items/{part_id}.
func (s *Server) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	var userID, partID int64
	if err := pathParam(r, "user_id", &userID); err != nil {
		s.handleRequestError(w, r, err)
		return
	}
	if err := pathParam(r, "part_id", &partID); err != nil {
		s.handleRequestError(w, r, err)
		return
	}
	c, err := s.svc.Carts.Remove(r.Context(), userID, partID)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, cartToResponse(&c))
}

// ClearCart handles DELETE /api/cart/{user_id}.
func (s *Server) ClearCart(w http.ResponseWriter, r *http.Request) {
	var userID int64
	if err := pathParam(r, "user_id", &userID); err != nil {
		s.handleRequestError(w, r, err)
		return
	}
	if err := s.svc.Carts.Clear(r.Context(), userID); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, successResponse{Success: true, Message: "Cart cleared"})
}

// PlaceOrder handles POST /api/orders. Delivery fields left blank are taken
// from the customer's saved profile when one exists.
func (s *Server) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := decodeBody(r, &req); err != nil {
		s.handleRequestError(w, r, err)
		return
	}

	r = r.WithContext(logpkg.With(r.Context(), zap.Int64("user_id", req.UserID)))
	place := orderuc.PlaceRequest{
		UserID:   req.UserID,
		FullName: req.FullName,
		Phone:    req.Phone,
		Address:  req.DeliveryAddress,
		Notes:    req.Notes,
	}
	if place.FullName == "" || place.Phone == "" || place.Address == "" {
		p, err := s.svc.Customers.Profile(r.Context(), req.UserID)
		switch {
		case err == nil:
			place.FullName = fallback(place.FullName, p.FullName)
			place.Phone = fallback(place.Phone, p.Phone)
			place.Address = fallback(place.Address, p.Address)
		case !errors.Is(err, domain.ErrProfileNotFound):
			s.handleDomainError(w, r, err)
			return
		}
	}

	o, err := s.svc.Orders.Place(r.Context(), place)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, map[string]any{"success": true, "order": orderToResponse(&o)})
}

// ListUserOrders handles GET /api/orders/{user_id}.
func (s *Server) ListUserOrders(w http.ResponseWriter, r *http.Request) {
	var userID int64
	if err := pathParam(r, "user_id", &userID); err != nil {
		s.handleRequestError(w, r, err)
		return
	}
	orders, err := s.svc.Orders.ListByUser(r.Context(), userID)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"orders": ordersToResponse(orders)})
}

// ListOrders handles GET /api/admin/orders?status=&limit=.
func (s *Server) ListOrders(w http.ResponseWriter, r *http.Request) {
	var (
		status *string
		limit  *int
	)
	if err := bindQuery(r, map[string]any{"status": &status, "limit": &limit}); err != nil {
		s.handleRequestError(w, r, err)
		return
	}
	orders, err := s.svc.Orders.List(r.Context(), deref(status), deref(limit))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"orders": ordersToResponse(orders)})
}

// UpdateOrderStatus handles PATCH /api/admin/orders/{id}/status.
func (s *Server) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var id int64
	if err := pathParam(r, "id", &id); err != nil {
		s.handleRequestError(w, r, err)
		return
	}
	var req updateStatusRequest
	if err := decodeBody(r, &req); err != nil {
		s.handleRequestError(w, r, err)
		return
	}
	o, err := s.svc.Orders.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"success": true, "order": orderToResponse(&o)})
}

// RegisterCustomer handles POST /api/customers.
func (s *Server) RegisterCustomer(w http.ResponseWriter, r *http.Request) {
	var req registerCustomerRequest
	if err := decodeBody(r, &req); err != nil {
		s.handleRequestError(w, r, err)
		return
	}
	c, err := s.svc.Customers.Register(r.Context(), req.UserID, req.Username, req.FirstName)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, customerResponse{
		UserID:    c.UserID,
		Username:  c.Username,
		FirstName: c.FirstName,
		CreatedAt: c.CreatedAt,
	})
}

// GetProfile handles GET /api/profile/{user_id}.
func (s *Server) GetProfile(w http.ResponseWriter, r *http.Request) {
	var userID int64
	if err := pathParam(r, "user_id", &userID); err != nil {
		s.handleRequestError(w, r, err)
		return
	}
	p, err := s.svc.Customers.Profile(r.Context(), userID)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"profile": profileToResponse(p)})
}

// SaveProfile handles POST /api/profile.
func (s *Server) SaveProfile(w http.ResponseWriter, r *http.Request) {
	var req saveProfileRequest
	if err := decodeBody(r, &req); err != nil {
		s.handleRequestError(w, r, err)
		return
	}
	if _, err := s.svc.Customers.SaveProfile(r.Context(), req.UserID, req.FullName, req.Phone, req.Address); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, successResponse{Success: true, Message: "Profile saved successfully"})
}

type healthResponse struct {
	Status       string            `json:"status"`
	Checks       map[string]string `json:"checks"`
	CacheBackend string            `json:"cache_backend,omitempty"`
	Timestamp    time.Time         `json:"timestamp"`
}

// Health handles GET /health. Only an unreachable catalog answers 503.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	report := s.svc.Health.Check(r.Context())
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	status := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, nil, status, healthResponse{
		Status:       string(report.Status),
		Checks:       checks,
		CacheBackend: report.CacheBackend,
		Timestamp:    time.Now().UTC(),
	})
}

func fallback(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
