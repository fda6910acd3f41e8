package chi

import (
	"net/http"

	gochi "github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/metrics"
)

// RouterConfig holds the cross-cutting HTTP settings.
type RouterConfig struct {
	CORSOrigins     []string
	RateLimitPerMin int
	APIKeys         []string
}

// Routes builds the storefront router.
func (s *Server) Routes(cfg RouterConfig) http.Handler {
	r := gochi.NewRouter()
	r.Use(jsonRecoverer(s.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(s.logger))
	r.Use(metrics.Middleware())

	r.Get("/health", s.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r gochi.Router) {
		r.Use(corsMiddleware(cfg.CORSOrigins))
		r.Use(rateLimitMiddleware(cfg.RateLimitPerMin))

		r.Get("/parts", s.ListParts)
		r.Get("/parts/{id}", s.GetPart)
		r.Get("/part-details", s.GetPartDetails)
		r.Get("/filters", s.GetFilters)
		r.Get("/brands", s.GetBrands)
		r.Get("/models/{brand}", s.GetModels)
		r.Get("/model-search", s.SearchModels)
		r.Get("/years", s.GetAllYears)
		r.Get("/years/{brand}/{model}", s.GetYears)
		r.Get("/categories/{brand}/{model}", s.GetCategories)
		r.Get("/part-names/{brand}/{model}/{category}", s.GetPartNames)
		r.Get("/colors/{brand}/{model}/{part}", s.GetColors)
		r.Get("/suggestions", s.GetSuggestions)

		r.Post("/cart/add", s.AddToCart)
		r.Get("/cart/{user_id}", s.GetCart)
		r.Delete("/cart/{user_id}", s.ClearCart)
		r.Delete("/cart/{user_id}/items/{part_id}", s.RemoveCartItem)

		r.Post("/orders", s.PlaceOrder)
		r.Get("/orders/{user_id}", s.ListUserOrders)

		r.Post("/customers", s.RegisterCustomer)
		r.Get("/profile/{user_id}", s.GetProfile)
		r.Post("/profile", s.SaveProfile)

		r.Route("/admin", func(r gochi.Router) {
			r.Use(BearerAuthMiddleware(cfg.APIKeys))
			r.Get("/orders", s.ListOrders)
			r.Patch("/orders/{id}/status", s.UpdateOrderStatus)
			r.Post("/cache/invalidate", s.InvalidateCatalogCache)
		})
	})

	return r
}
