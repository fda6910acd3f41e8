package part

import (
	"fmt"
	"strings"

	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain"
)

// Field limits for catalog records.
const (
	MaxNameLength        = 256
	MaxDescriptionLength = 4096
	MinYear              = 1900
	MaxYear              = 2100
)

// Attrs carries the raw attributes of a catalog part.
// Optional text fields are empty when unset; optional years are nil.
type Attrs struct {
	ID          int64
	Name        string
	Description string
	Category    string
	Brand       string
	Model       string
	YearFrom    *int
	YearTo      *int
	Price       float64
	Stock       int
	Color       string
	ImageURL    string
	PartNumber  string
}

// Part is one catalog entry (immutable value object).
type Part struct {
	a       Attrs
	missing []string
}

// New validates and creates a Part.
// Name, brand, model and category are required; price and stock must be non-negative;
// year_from must not exceed year_to when both are present.
func New(a Attrs) (Part, error) {
	a = trimAttrs(a)
	if a.Name == "" {
		return Part{}, fmt.Errorf("part name is required")
	}
	if len(a.Name) > MaxNameLength {
		return Part{}, fmt.Errorf("part name too long (max %d)", MaxNameLength)
	}
	if len(a.Description) > MaxDescriptionLength {
		return Part{}, fmt.Errorf("description too long (max %d)", MaxDescriptionLength)
	}
	if a.Brand == "" || a.Model == "" {
		return Part{}, fmt.Errorf("part %q: brand and model are required", a.Name)
	}
	if a.Category == "" {
		return Part{}, fmt.Errorf("part %q: category is required", a.Name)
	}
	if a.Price < 0 {
		return Part{}, fmt.Errorf("part %q: price must be non-negative", a.Name)
	}
	if a.Stock < 0 {
		return Part{}, fmt.Errorf("part %q: stock must be non-negative", a.Name)
	}
	for _, y := range []*int{a.YearFrom, a.YearTo} {
		if y != nil && (*y < MinYear || *y > MaxYear) {
			return Part{}, fmt.Errorf("part %q: year %d out of range [%d, %d]", a.Name, *y, MinYear, MaxYear)
		}
	}
	if a.YearFrom != nil && a.YearTo != nil && *a.YearFrom > *a.YearTo {
		return Part{}, fmt.Errorf("part %q: year_from %d is after year_to %d", a.Name, *a.YearFrom, *a.YearTo)
	}
	return Part{a: cloneAttrs(a)}, nil
}

// Reconstruct creates a Part without validation (storage hydration).
func Reconstruct(a Attrs) Part {
	return Part{a: cloneAttrs(a)}
}

// Hydrate creates a Part from a stored row, recording the required fields
// the row did not carry. Such a part is still served; Complete reports it.
func Hydrate(a Attrs, missing ...string) Part {
	p := Part{a: cloneAttrs(a)}
	if len(missing) > 0 {
		p.missing = append([]string(nil), missing...)
	}
	return p
}

// Complete returns ErrIncompleteRecord naming the required fields missing
// from the stored row, or nil.
func (p *Part) Complete() error {
	if len(p.missing) == 0 {
		return nil
	}
	return fmt.Errorf("part %d missing %s: %w", p.a.ID, strings.Join(p.missing, ", "), domain.ErrIncompleteRecord)
}

// ID returns the catalog identifier.
func (p *Part) ID() int64 { return p.a.ID }

// Name returns the part name.
func (p *Part) Name() string { return p.a.Name }

// Description returns the free-text description.
func (p *Part) Description() string { return p.a.Description }

// Category returns the category label.
func (p *Part) Category() string { return p.a.Category }

// Brand returns the bike brand.
func (p *Part) Brand() string { return p.a.Brand }

// Model returns the bike model.
func (p *Part) Model() string { return p.a.Model }

// Price returns the unit price.
func (p *Part) Price() float64 { return p.a.Price }

// Stock returns the quantity on hand.
func (p *Part) Stock() int { return p.a.Stock }

// Color returns the color, empty when unset.
func (p *Part) Color() string { return p.a.Color }

// ImageURL returns the image reference, empty when unset.
func (p *Part) ImageURL() string { return p.a.ImageURL }

// PartNumber returns the manufacturer part number, empty when unset.
func (p *Part) PartNumber() string { return p.a.PartNumber }

// YearFrom returns the first applicable year, if known.
func (p *Part) YearFrom() (int, bool) { return deref(p.a.YearFrom) }

// YearTo returns the last applicable year, if known.
func (p *Part) YearTo() (int, bool) { return deref(p.a.YearTo) }

// Attrs returns a copy of the raw attributes.
func (p *Part) Attrs() Attrs { return cloneAttrs(p.a) }

// FitsYear reports whether the part's inclusive year range contains year.
// Parts without a complete range never fit.
func (p *Part) FitsYear(year int) bool {
	from, okFrom := p.YearFrom()
	to, okTo := p.YearTo()
	return okFrom && okTo && from <= year && year <= to
}

// SearchText is the synthesized full-text field used by fuzzy ranking.
func (p *Part) SearchText() string {
	return strings.Join([]string{p.a.Name, p.a.Brand, p.a.Model, p.a.Category, p.a.Description}, " ")
}

// CompatibleModels lists the "<brand> <model>" strings the part fits.
func (p *Part) CompatibleModels() []string {
	return []string{strings.TrimSpace(p.a.Brand + " " + p.a.Model)}
}

func deref(p *int) (int, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}

func intPtr(v int) *int { return &v }

func cloneAttrs(a Attrs) Attrs {
	if a.YearFrom != nil {
		a.YearFrom = intPtr(*a.YearFrom)
	}
	if a.YearTo != nil {
		a.YearTo = intPtr(*a.YearTo)
	}
	return a
}

func trimAttrs(a Attrs) Attrs {
	a.Name = strings.TrimSpace(a.Name)
	a.Description = strings.TrimSpace(a.Description)
	a.Category = strings.TrimSpace(a.Category)
	a.Brand = strings.TrimSpace(a.Brand)
	a.Model = strings.TrimSpace(a.Model)
	a.Color = strings.TrimSpace(a.Color)
	a.ImageURL = strings.TrimSpace(a.ImageURL)
	a.PartNumber = strings.TrimSpace(a.PartNumber)
	return a
}

// Filterable field names understood by the catalog store.
const (
	FieldName     = "name"
	FieldBrand    = "brand"
	FieldModel    = "model"
	FieldCategory = "category"
	FieldYearFrom = "year_from"
	FieldYearTo   = "year_to"
	FieldPrice    = "price"
	FieldColor    = "color"
	FieldID       = "id"
)
