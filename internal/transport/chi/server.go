package chi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain"
	logpkg "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/logger"
	cartuc "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/usecase/cart"
	cataloguc "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/usecase/catalog"
	customeruc "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/usecase/customer"
	facetuc "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/usecase/facet"
	healthuc "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/usecase/health"
	orderuc "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/usecase/order"
	searchuc "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/usecase/search"
	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/validation"
)

// Error codes returned in ErrorResponse.Code.
const (
	CodeBadRequest       = "bad_request"
	CodeValidationFailed = "validation_failed"
	CodeUnauthorized     = "unauthorized"
	CodeNotFound         = "not_found"
	CodePartNotFound     = "part_not_found"
	CodeProfileNotFound  = "profile_not_found"
	CodeCartEmpty        = "cart_empty"
	CodeInvalidStatus    = "invalid_status"
	CodeStoreUnavailable = "store_unavailable"
	CodeRateLimited      = "rate_limited"
	CodeInternalError    = "internal_error"
)

// DegradedHeader lists soft failures swallowed while answering a request.
const DegradedHeader = "X-Search-Degraded"

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Services groups the use cases exposed over HTTP.
type Services struct {
	Search    *searchuc.Service
	Facets    *facetuc.Service
	Catalog   *cataloguc.Service
	Carts     *cartuc.Service
	Orders    *orderuc.Service
	Customers *customeruc.Service
	Health    *healthuc.Service
}

// Server holds the HTTP handlers of the storefront API.
type Server struct {
	svc           Services
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(svc Services, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{svc: svc, logger: logger}
	s.errorHandlers = []errorHandler{
		validationHandler,
		sentinelHandler(domain.ErrPartNotFound, http.StatusNotFound, CodePartNotFound),
		sentinelHandler(domain.ErrProfileNotFound, http.StatusNotFound, CodeProfileNotFound),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, CodeNotFound),
		sentinelHandler(domain.ErrCartEmpty, http.StatusBadRequest, CodeCartEmpty),
		sentinelHandler(domain.ErrInvalidStatus, http.StatusBadRequest, CodeInvalidStatus),
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrStoreUnavailable, http.StatusServiceUnavailable, CodeStoreUnavailable),
	}
	return s
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON encodes v with status. Degradation reasons recorded on the
// request context are surfaced in DegradedHeader.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	if r != nil {
		if reasons := domain.DegradationFromContext(r.Context()).Reasons(); len(reasons) > 0 {
			w.Header().Set(DegradedHeader, strings.Join(reasons, ","))
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, nil, status, ErrorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}
	sentinels := []error{
		domain.ErrPartNotFound,
		domain.ErrProfileNotFound,
		domain.ErrNotFound,
		domain.ErrCartEmpty,
		domain.ErrInvalidStatus,
		domain.ErrInvalidRequest,
		domain.ErrStoreUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// validationHandler answers request-struct validation failures.
func validationHandler(w http.ResponseWriter, err error, _ string) bool {
	var verr *validation.Error
	if !errors.As(err, &verr) {
		return false
	}
	writeError(w, http.StatusBadRequest, CodeValidationFailed, verr.Error())
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContext(r.Context(), s.logger)
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}

// decodeBody reads a JSON body into dst and validates it.
func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &badRequestError{msg: "invalid request body"}
	}
	return validation.Struct(dst)
}

// badRequestError marks malformed input that never reached a use case.
type badRequestError struct{ msg string }

func (e *badRequestError) Error() string { return e.msg }

func (s *Server) handleRequestError(w http.ResponseWriter, r *http.Request, err error) {
	var bre *badRequestError
	if errors.As(err, &bre) {
		writeError(w, http.StatusBadRequest, CodeBadRequest, bre.msg)
		return
	}
	s.handleDomainError(w, r, err)
}
