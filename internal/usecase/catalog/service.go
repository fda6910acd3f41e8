package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sahilm/fuzzy"
	"go.uber.org/zap"

	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/cache"
	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain"
	domfacet "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/facet"
	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/part"
	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/search/filter"
	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/search/request"
)

// Lookup cache settings. Lookup keys live under a generation that
// Invalidate retires, so every brand, model and year list goes at once.
const (
	LookupTTL       = time.Hour
	generationKey   = "lookup_generation"
	generationTTL   = 24 * time.Hour
	modelSearchMax  = 10
	minModelQuery   = 1
	degradedCatalog = "store_unavailable"
)

// ModelRef names one bike model of a brand.
type ModelRef struct {
	Brand string
	Model string
}

// Service answers the storefront's drill-down lookups
// (brand → model → year → category → part → color).
// Store failures yield empty lists and mark the request degraded.
type Service struct {
	store  PartStore
	parts  PartGetter
	cache  Cache
	logger *zap.Logger
}

// New creates a lookup service.
func New(store PartStore, parts PartGetter, c Cache, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, parts: parts, cache: c, logger: logger}
}

// Brands returns every brand, sorted. Cached.
func (s *Service) Brands(ctx context.Context) []string {
	return s.cachedDistinct(ctx, s.key(ctx, "brands"), part.FieldBrand, nil)
}

// Models returns the models of a brand, sorted. Cached per brand.
func (s *Service) Models(ctx context.Context, brand string) ([]string, error) {
	brand, err := required("brand", brand)
	if err != nil {
		return nil, err
	}
	return s.cachedDistinct(ctx, s.key(ctx, "models", brand), part.FieldModel, eqs(part.FieldBrand, brand)), nil
}

// Years returns every model year covered by a brand+model, newest first. Cached.
func (s *Service) Years(ctx context.Context, brand, model string) ([]int, error) {
	brand, err := required("brand", brand)
	if err != nil {
		return nil, err
	}
	model, err = required("model", model)
	if err != nil {
		return nil, err
	}

	key := s.key(ctx, "years", brand, model)
	if years, ok := cache.GetJSON[[]int](ctx, s.cache, key); ok {
		return years, nil
	}

	expr, err := filter.NewExpression(eqs(part.FieldBrand, brand, part.FieldModel, model), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}
	rows, err := s.store.FacetRows(ctx, expr)
	if err != nil {
		s.degrade(ctx, "years", err)
		return []int{}, nil
	}

	set := make(map[int]struct{})
	for _, r := range rows {
		for _, y := range domfacet.ExpandYears(r.YearFrom, r.YearTo) {
			set[y] = struct{}{}
		}
	}
	years := domfacet.YearsDescending(set)
	cache.SetJSON(ctx, s.cache, key, years, LookupTTL)
	return years, nil
}

// Categories returns the part categories available for a brand+model.
func (s *Service) Categories(ctx context.Context, brand, model string) ([]string, error) {
	conds, err := requiredEqs(part.FieldBrand, brand, part.FieldModel, model)
	if err != nil {
		return nil, err
	}
	return s.distinct(ctx, part.FieldCategory, conds), nil
}

// PartNames returns the part names of a category for a brand+model.
func (s *Service) PartNames(ctx context.Context, brand, model, category string) ([]string, error) {
	conds, err := requiredEqs(part.FieldBrand, brand, part.FieldModel, model, part.FieldCategory, category)
	if err != nil {
		return nil, err
	}
	return s.distinct(ctx, part.FieldName, conds), nil
}

// Colors returns the colors a part is offered in for a brand+model.
func (s *Service) Colors(ctx context.Context, brand, model, partName string) ([]string, error) {
	conds, err := requiredEqs(part.FieldBrand, brand, part.FieldModel, model, part.FieldName, partName)
	if err != nil {
		return nil, err
	}
	return s.distinct(ctx, part.FieldColor, conds), nil
}

// SearchModels finds up to ten distinct brand+model pairs whose model name
// contains the query, best fuzzy match first.
func (s *Service) SearchModels(ctx context.Context, query string) []ModelRef {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < minModelQuery {
		return []ModelRef{}
	}

	c, err := filter.NewContains(part.FieldModel, query)
	if err != nil {
		return []ModelRef{}
	}
	expr, err := filter.NewExpression([]filter.Condition{c}, nil)
	if err != nil {
		return []ModelRef{}
	}
	rows, err := s.store.FacetRows(ctx, expr)
	if err != nil {
		s.degrade(ctx, "model search", err)
		return []ModelRef{}
	}

	seen := make(map[ModelRef]struct{})
	var refs modelRefs
	for _, r := range rows {
		ref := ModelRef{Brand: r.Brand, Model: r.Model}
		if _, dup := seen[ref]; dup || ref.Model == "" {
			continue
		}
		seen[ref] = struct{}{}
		refs = append(refs, ref)
	}

	ranked := make([]ModelRef, 0, len(refs))
	placed := make(map[int]struct{}, len(refs))
	for _, m := range fuzzy.FindFrom(strings.ToLower(query), refs) {
		ranked = append(ranked, refs[m.Index])
		placed[m.Index] = struct{}{}
	}
	for i, ref := range refs {
		if _, ok := placed[i]; !ok {
			ranked = append(ranked, ref)
		}
	}

	if len(ranked) > modelSearchMax {
		ranked = ranked[:modelSearchMax]
	}
	return ranked
}

// Part returns one part by id.
func (s *Service) Part(ctx context.Context, id int64) (part.Part, error) {
	if id <= 0 {
		return part.Part{}, domain.NewValidationError("id", "must be positive")
	}
	p, err := s.parts.Get(ctx, id)
	if err != nil {
		return part.Part{}, fmt.Errorf("get part: %w", err)
	}
	return p, nil
}

// PartDetails returns the first part with the given name that fits a
// brand+model in the given year.
func (s *Service) PartDetails(ctx context.Context, brand, model string, year int, name string) (part.Part, error) {
	for _, f := range []struct{ field, v string }{{"brand", brand}, {"model", model}, {"part", name}} {
		if _, err := required(f.field, f.v); err != nil {
			return part.Part{}, err
		}
	}
	expr, err := request.Structural{Brand: brand, Model: model, Year: year}.Expression()
	if err != nil {
		return part.Part{}, domain.NewValidationError("year", err.Error())
	}
	nameEq, err := filter.NewEq(part.FieldName, strings.TrimSpace(name))
	if err != nil {
		return part.Part{}, domain.NewValidationError("part", err.Error())
	}

	parts, err := s.store.Find(ctx, expr.And(nameEq), 1)
	if err != nil {
		return part.Part{}, fmt.Errorf("find part: %w", err)
	}
	if len(parts) == 0 {
		return part.Part{}, domain.ErrPartNotFound
	}
	return parts[0], nil
}

// Invalidate retires the current lookup generation. Brand, model and year
// lists cached under it are never read again and expire on their own TTL.
// A part getter with its own cache is purged too.
func (s *Service) Invalidate(ctx context.Context) {
	s.cache.Delete(ctx, generationKey)
	if p, ok := s.parts.(purger); ok {
		p.Purge()
	}
}

// key builds a lookup cache key under the current generation.
func (s *Service) key(ctx context.Context, parts ...string) string {
	return "lookup:" + s.generation(ctx) + ":" + strings.Join(parts, ":")
}

// generation returns the live generation, minting a new one when none is
// cached. A missing generation therefore only costs cache misses.
func (s *Service) generation(ctx context.Context) string {
	if g, ok := cache.GetJSON[string](ctx, s.cache, generationKey); ok && g != "" {
		return g
	}
	g := uuid.NewString()
	cache.SetJSON(ctx, s.cache, generationKey, g, generationTTL)
	return g
}

func (s *Service) cachedDistinct(ctx context.Context, key, field string, conds []filter.Condition) []string {
	if vals, ok := cache.GetJSON[[]string](ctx, s.cache, key); ok {
		return vals
	}
	expr, err := filter.NewExpression(conds, nil)
	if err != nil {
		return []string{}
	}
	vals, err := s.store.Distinct(ctx, field, expr)
	if err != nil {
		s.degrade(ctx, field+" lookup", err)
		return []string{}
	}
	cache.SetJSON(ctx, s.cache, key, vals, LookupTTL)
	return vals
}

func (s *Service) distinct(ctx context.Context, field string, conds []filter.Condition) []string {
	expr, err := filter.NewExpression(conds, nil)
	if err != nil {
		return []string{}
	}
	vals, err := s.store.Distinct(ctx, field, expr)
	if err != nil {
		s.degrade(ctx, field+" lookup", err)
		return []string{}
	}
	return vals
}

func (s *Service) degrade(ctx context.Context, what string, err error) {
	s.logger.Warn("Catalog lookup failed, returning empty list",
		zap.String("lookup", what),
		zap.Error(err),
	)
	domain.DegradationFromContext(ctx).Mark(degradedCatalog)
}

// modelRefs implements fuzzy.Source over model names.
type modelRefs []ModelRef

func (m modelRefs) String(i int) string { return strings.ToLower(m[i].Model) }
func (m modelRefs) Len() int            { return len(m) }

func required(field, v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", domain.NewValidationError(field, "is required")
	}
	return v, nil
}

// eqs builds equality conditions from key/value pairs. Keys are trusted constants.
func eqs(kv ...string) []filter.Condition {
	out := make([]filter.Condition, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		c, err := filter.NewEq(kv[i], kv[i+1])
		if err == nil {
			out = append(out, c)
		}
	}
	return out
}

// requiredEqs validates every value is non-empty before building conditions.
func requiredEqs(kv ...string) ([]filter.Condition, error) {
	for i := 0; i+1 < len(kv); i += 2 {
		v, err := required(kv[i], kv[i+1])
		if err != nil {
			return nil, err
		}
		kv[i+1] = v
	}
	return eqs(kv...), nil
}
