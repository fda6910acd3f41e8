package request

import (
	"fmt"
	"strings"

	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/part"
	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/search/filter"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength = 256
	DefaultLimit   = 200
	MaxLimit       = 2000
	// FetchLimit caps how many structurally filtered candidates are pulled
	// from the store before fuzzy ranking.
	FetchLimit = 2000
)

// Structural holds the exact-match and year predicates applied before ranking.
// Zero values mean "no filter".
type Structural struct {
	Brand    string
	Model    string
	Category string
	Year     int
}

// Request is a validated catalog search.
type Request struct {
	query   string
	filters filter.Expression
	limit   int
}

// New validates and normalizes search parameters.
// An empty query is allowed and means "browse in store order".
// Limit defaults to DefaultLimit and is clamped to MaxLimit.
func New(query string, s Structural, limit int) (Request, error) {
	query = strings.TrimSpace(query)
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("query too long (max %d chars)", MaxQueryLength)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	expr, err := s.Expression()
	if err != nil {
		return Request{}, err
	}

	return Request{query: query, filters: expr, limit: limit}, nil
}

// Query returns the trimmed search text (case preserved).
func (r *Request) Query() string { return r.query }

// Filters returns the structural pre-filter expression.
func (r *Request) Filters() filter.Expression { return r.filters }

// Limit returns the maximum results to return.
func (r *Request) Limit() int { return r.limit }

// Expression converts the structural predicates into a filter expression.
// A year filter matches parts whose [year_from, year_to] range contains it.
func (s Structural) Expression() (filter.Expression, error) {
	var must []filter.Condition

	eqs := []struct{ key, value string }{
		{part.FieldCategory, s.Category},
		{part.FieldBrand, s.Brand},
		{part.FieldModel, s.Model},
	}
	for _, eq := range eqs {
		v := strings.TrimSpace(eq.value)
		if v == "" {
			continue
		}
		c, err := filter.NewEq(eq.key, v)
		if err != nil {
			return filter.Expression{}, fmt.Errorf("%s filter: %w", eq.key, err)
		}
		must = append(must, c)
	}

	if s.Year != 0 {
		if s.Year < part.MinYear || s.Year > part.MaxYear {
			return filter.Expression{}, fmt.Errorf("year must be between %d and %d", part.MinYear, part.MaxYear)
		}
		y := float64(s.Year)
		upper, err := filter.NewRangeFilter(nil, nil, nil, &y)
		if err != nil {
			return filter.Expression{}, fmt.Errorf("year filter: %w", err)
		}
		lower, err := filter.NewRangeFilter(nil, &y, nil, nil)
		if err != nil {
			return filter.Expression{}, fmt.Errorf("year filter: %w", err)
		}
		from, _ := filter.NewRange(part.FieldYearFrom, upper)
		to, _ := filter.NewRange(part.FieldYearTo, lower)
		must = append(must, from, to)
	}

	return filter.NewExpression(must, nil)
}
