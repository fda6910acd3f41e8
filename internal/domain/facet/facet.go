// Package facet derives filter-UI dimensions from the catalog.
package facet

import (
	"slices"
	"sort"
)

// Row is the brand/model/category/year projection of one catalog record.
type Row struct {
	Brand    string
	Model    string
	Category string
	YearFrom *int
	YearTo   *int
}

// Set is the aggregate filter view. JSON field names match the storefront client.
type Set struct {
	Brands        []string            `json:"brands"`
	Categories    []string            `json:"categories"`
	Years         []int               `json:"years"`
	ModelsByBrand map[string][]string `json:"models_by_brand"`
}

// Empty returns a Set with non-nil, empty members.
func Empty() Set {
	return Set{
		Brands:        []string{},
		Categories:    []string{},
		Years:         []int{},
		ModelsByBrand: map[string][]string{},
	}
}

// IsEmpty reports whether the set has no brands, categories or years.
func (s Set) IsEmpty() bool {
	return len(s.Brands) == 0 && len(s.Categories) == 0 && len(s.Years) == 0
}

// Build computes the full Set from a projection of every catalog record.
// Empty labels are skipped. Rows with a missing year bound contribute no years;
// an inverted range (from > to) expands to nothing.
func Build(rows []Row) Set {
	brands := make(map[string]struct{})
	categories := make(map[string]struct{})
	years := make(map[int]struct{})
	models := make(map[string]map[string]struct{})

	for _, r := range rows {
		if r.Brand != "" {
			brands[r.Brand] = struct{}{}
			if r.Model != "" {
				if models[r.Brand] == nil {
					models[r.Brand] = make(map[string]struct{})
				}
				models[r.Brand][r.Model] = struct{}{}
			}
		}
		if r.Category != "" {
			categories[r.Category] = struct{}{}
		}
		for _, y := range ExpandYears(r.YearFrom, r.YearTo) {
			years[y] = struct{}{}
		}
	}

	set := Empty()
	set.Brands = sortedKeys(brands)
	set.Categories = sortedKeys(categories)
	set.Years = YearsDescending(years)
	for _, b := range set.Brands {
		set.ModelsByBrand[b] = sortedKeys(models[b])
	}
	return set
}

// ExpandYears lists every year in the inclusive range [from, to].
// Returns nil when either bound is missing or from > to.
func ExpandYears(from, to *int) []int {
	if from == nil || to == nil || *from > *to {
		return nil
	}
	out := make([]int, 0, *to-*from+1)
	for y := *from; y <= *to; y++ {
		out = append(out, y)
	}
	return out
}

// YearsDescending flattens a year set sorted newest first.
func YearsDescending(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for y := range set {
		out = append(out, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
