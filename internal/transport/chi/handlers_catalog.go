package chi

import (
	"net/http"

	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/search/request"
	searchuc "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/usecase/search"
)

// ListParts handles GET /api/parts.
func (s *Server) ListParts(w http.ResponseWriter, r *http.Request) {
	var (
		search, category, brand, model *string
		year, limit                    *int
	)
	err := bindQuery(r, map[string]any{
		"search": &search, "category": &category, "brand": &brand,
		"model": &model, "year": &year, "limit": &limit,
	})
	if err != nil {
		s.handleRequestError(w, r, err)
		return
	}

	req, err := request.New(deref(search), request.Structural{
		Brand:    deref(brand),
		Model:    deref(model),
		Category: deref(category),
		Year:     deref(year),
	}, deref(limit))
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, err.Error())
		return
	}

	out := s.svc.Search.Search(r.Context(), &req)
	writeJSON(w, r, http.StatusOK, map[string]any{"parts": partsToResponse(out.Parts)})
}

// GetPart handles GET /api/parts/{id}.
func (s *Server) GetPart(w http.ResponseWriter, r *http.Request) {
	var id int64
	if err := pathParam(r, "id", &id); err != nil {
		s.handleRequestError(w, r, err)
		return
	}
	p, err := s.svc.Catalog.Part(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"part": partToResponse(&p)})
}

// GetPartDetails handles GET /api/part-details?brand&model&year&part.
func (s *Server) GetPartDetails(w http.ResponseWriter, r *http.Request) {
	var (
		brand, model, name *string
		year               *int
	)
	if err := bindQuery(r, map[string]any{"brand": &brand, "model": &model, "part": &name, "year": &year}); err != nil {
		s.handleRequestError(w, r, err)
		return
	}
	p, err := s.svc.Catalog.PartDetails(r.Context(), deref(brand), deref(model), deref(year), deref(name))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"part": partToResponse(&p)})
}

// GetFilters handles GET /api/filters.
func (s *Server) GetFilters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.svc.Facets.Facets(r.Context()))
}

// GetBrands handles GET /api/brands.
func (s *Server) GetBrands(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{"brands": s.svc.Catalog.Brands(r.Context())})
}

// GetModels handles GET /api/models/{brand}.
func (s *Server) GetModels(w http.ResponseWriter, r *http.Request) {
	var brand string
	if err := pathParam(r, "brand", &brand); err != nil {
		s.handleRequestError(w, r, err)
		return
	}
	models, err := s.svc.Catalog.Models(r.Context(), brand)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"models": models})
}

// GetAllYears handles GET /api/years.
func (s *Server) GetAllYears(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{"years": s.svc.Facets.Facets(r.Context()).Years})
}

// GetYears handles GET /api/years/{brand}/{model}.
func (s *Server) GetYears(w http.ResponseWriter, r *http.Request) {
	brand, model, ok := s.brandModel(w, r)
	if !ok {
		return
	}
	years, err := s.svc.Catalog.Years(r.Context(), brand, model)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"years": years})
}

// GetCategories handles GET /api/categories/{brand}/{model}.
func (s *Server) GetCategories(w http.ResponseWriter, r *http.Request) {
	brand, model, ok := s.brandModel(w, r)
	if !ok {
		return
	}
	categories, err := s.svc.Catalog.Categories(r.Context(), brand, model)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"categories": categories})
}

// GetPartNames handles GET /api/part-names/{brand}/{model}/{category}.
func (s *Server) GetPartNames(w http.ResponseWriter, r *http.Request) {
	brand, model, ok := s.brandModel(w, r)
	if !ok {
		return
	}
	var category string
	if err := pathParam(r, "category", &category); err != nil {
		s.handleRequestError(w, r, err)
		return
	}
	names, err := s.svc.Catalog.PartNames(r.Context(), brand, model, category)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"part_names": names})
}

// GetColors handles GET /api/colors/{brand}/{model}/{part}.
func (s *Server) GetColors(w http.ResponseWriter, r *http.Request) {
	brand, model, ok := s.brandModel(w, r)
	if !ok {
		return
	}
	var name string
	if err := pathParam(r, "part", &name); err != nil {
		s.handleRequestError(w, r, err)
		return
	}
	colors, err := s.svc.Catalog.Colors(r.Context(), brand, model, name)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"colors": colors})
}

// SearchModels handles GET /api/model-search?q=.
func (s *Server) SearchModels(w http.ResponseWriter, r *http.Request) {
	var q *string
	if err := queryParam(r, "q", &q); err != nil {
		s.handleRequestError(w, r, err)
		return
	}
	refs := s.svc.Catalog.SearchModels(r.Context(), deref(q))
	writeJSON(w, r, http.StatusOK, map[string]any{"models": modelRefsToResponse(refs)})
}

// GetSuggestions handles GET /api/suggestions?q=&limit=.
func (s *Server) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	var (
		q     *string
		limit *int
	)
	if err := bindQuery(r, map[string]any{"q": &q, "limit": &limit}); err != nil {
		s.handleRequestError(w, r, err)
		return
	}
	n := deref(limit)
	if n <= 0 {
		n = searchuc.DefaultSuggestLimit
	}
	sugg := s.svc.Search.Suggest(r.Context(), deref(q), n)
	writeJSON(w, r, http.StatusOK, map[string]any{"suggestions": suggestionsToResponse(sugg)})
}

// InvalidateCatalogCache handles POST /api/admin/cache/invalidate.
func (s *Server) InvalidateCatalogCache(w http.ResponseWriter, r *http.Request) {
	s.svc.Facets.Invalidate(r.Context())
	s.svc.Catalog.Invalidate(r.Context())
	writeJSON(w, r, http.StatusOK, successResponse{Success: true, Message: "Catalog cache invalidated"})
}

func (s *Server) brandModel(w http.ResponseWriter, r *http.Request) (brand, model string, ok bool) {
	if err := pathParam(r, "brand", &brand); err != nil {
		s.handleRequestError(w, r, err)
		return "", "", false
	}
	if err := pathParam(r, "model", &model); err != nil {
		s.handleRequestError(w, r, err)
		return "", "", false
	}
	return brand, model, true
}
