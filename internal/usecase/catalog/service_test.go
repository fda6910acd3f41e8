package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/cache"
	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain"
	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/facet"
	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/part"
	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/search/filter"
)

// --- Mocks ---

type mockStore struct {
	distinct      map[string][]string
	rows          []facet.Row
	found         []part.Part
	err           error
	distinctCalls int
	rowCalls      int
	lastExpr      filter.Expression
	lastLimit     int
}

func (m *mockStore) Find(_ context.Context, expr filter.Expression, limit int) ([]part.Part, error) {
	m.lastExpr, m.lastLimit = expr, limit
	return m.found, m.err
}

func (m *mockStore) Distinct(_ context.Context, field string, expr filter.Expression) ([]string, error) {
	m.distinctCalls++
	m.lastExpr = expr
	if m.err != nil {
		return nil, m.err
	}
	return m.distinct[field], nil
}

func (m *mockStore) FacetRows(_ context.Context, expr filter.Expression) ([]facet.Row, error) {
	m.rowCalls++
	m.lastExpr = expr
	return m.rows, m.err
}

type mockGetter struct {
	err    error
	purges int
}

func (m *mockGetter) Purge() { m.purges++ }

func (m *mockGetter) Get(_ context.Context, id int64) (part.Part, error) {
	if m.err != nil {
		return part.Part{}, m.err
	}
	return part.Reconstruct(part.Attrs{ID: id, Name: "Headlight Assembly"}), nil
}

func yr(v int) *int { return &v }

func newService(store *mockStore) *Service {
	return New(store, &mockGetter{}, cache.NewMemory(0, 0), nil)
}

func keys(expr filter.Expression) []string {
	var out []string
	for _, c := range expr.Must() {
		out = append(out, c.Key()+"="+c.Value())
	}
	return out
}

// --- Tests ---

func TestBrands_Cached(t *testing.T) {
	store := &mockStore{distinct: map[string][]string{part.FieldBrand: {"Bajaj", "Honda"}}}
	svc := newService(store)

	assert.Equal(t, []string{"Bajaj", "Honda"}, svc.Brands(context.Background()))
	assert.Equal(t, []string{"Bajaj", "Honda"}, svc.Brands(context.Background()))
	assert.Equal(t, 1, store.distinctCalls)
}

func TestInvalidate_DropsBrandAndModelLists(t *testing.T) {
	store := &mockStore{distinct: map[string][]string{
		part.FieldBrand: {"Bajaj"},
		part.FieldModel: {"Pulsar 150"},
	}}
	svc := newService(store)
	ctx := context.Background()

	svc.Brands(ctx)
	_, err := svc.Models(ctx, "Bajaj")
	require.NoError(t, err)
	require.Equal(t, 2, store.distinctCalls)

	svc.Invalidate(ctx)
	svc.Brands(ctx)
	_, err = svc.Models(ctx, "Bajaj")
	require.NoError(t, err)
	assert.Equal(t, 4, store.distinctCalls)
}

func TestInvalidate_DropsYearLists(t *testing.T) {
	store := &mockStore{rows: []facet.Row{{Brand: "Honda", Model: "Shine", YearFrom: yr(2015), YearTo: yr(2016)}}}
	svc := newService(store)
	ctx := context.Background()

	before, err := svc.Years(ctx, "Honda", "Shine")
	require.NoError(t, err)
	require.Equal(t, []int{2016, 2015}, before)

	// New rows land, then the catalog cache is invalidated.
	store.rows = []facet.Row{{Brand: "Honda", Model: "Shine", YearFrom: yr(2018), YearTo: yr(2019)}}
	svc.Invalidate(ctx)

	after, err := svc.Years(ctx, "Honda", "Shine")
	require.NoError(t, err)
	assert.Equal(t, []int{2019, 2018}, after)
	assert.Equal(t, 2, store.rowCalls)
}

func TestInvalidate_SharedAcrossServices(t *testing.T) {
	shared := cache.NewMemory(0, 0)
	store := &mockStore{distinct: map[string][]string{part.FieldBrand: {"Bajaj"}}}
	server := New(store, &mockGetter{}, shared, nil)
	importer := New(&mockStore{}, &mockGetter{}, shared, nil)
	ctx := context.Background()

	server.Brands(ctx)
	server.Brands(ctx)
	require.Equal(t, 1, store.distinctCalls)

	importer.Invalidate(ctx)
	server.Brands(ctx)
	assert.Equal(t, 2, store.distinctCalls)
}

func TestInvalidate_PurgesPartCache(t *testing.T) {
	getter := &mockGetter{}
	svc := New(&mockStore{}, getter, cache.NewMemory(0, 0), nil)

	svc.Invalidate(context.Background())

	assert.Equal(t, 1, getter.purges)
}

func TestLookups_MissingGenerationOnlyMisses(t *testing.T) {
	c := cache.NewMemory(0, 0)
	store := &mockStore{distinct: map[string][]string{part.FieldBrand: {"Hero"}}}
	svc := New(store, &mockGetter{}, c, nil)
	ctx := context.Background()

	assert.Equal(t, []string{"Hero"}, svc.Brands(ctx))
	c.Delete(ctx, generationKey)
	assert.Equal(t, []string{"Hero"}, svc.Brands(ctx))
	assert.Equal(t, []string{"Hero"}, svc.Brands(ctx))
	assert.Equal(t, 2, store.distinctCalls)
}

func TestModels_FiltersByBrand(t *testing.T) {
	store := &mockStore{distinct: map[string][]string{part.FieldModel: {"FZ", "R15"}}}
	svc := newService(store)

	got, err := svc.Models(context.Background(), " Yamaha ")
	require.NoError(t, err)
	assert.Equal(t, []string{"FZ", "R15"}, got)
	assert.Equal(t, []string{"brand=Yamaha"}, keys(store.lastExpr))

	_, err = svc.Models(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestYears_ExpandsRangesDescending(t *testing.T) {
	store := &mockStore{rows: []facet.Row{
		{YearFrom: yr(2015), YearTo: yr(2017)},
		{YearFrom: yr(2016), YearTo: yr(2016)},
		{YearFrom: yr(2020), YearTo: yr(2019)}, // inverted: nothing
		{YearFrom: yr(2012)},                   // open: nothing
	}}
	svc := newService(store)

	got, err := svc.Years(context.Background(), "Yamaha", "FZ")
	require.NoError(t, err)
	assert.Equal(t, []int{2017, 2016, 2015}, got)
	assert.Equal(t, []string{"brand=Yamaha", "model=FZ"}, keys(store.lastExpr))

	again, err := svc.Years(context.Background(), "Yamaha", "FZ")
	require.NoError(t, err)
	assert.Equal(t, got, again)
	assert.Equal(t, 1, store.rowCalls)
}

func TestCategoriesPartNamesColors(t *testing.T) {
	store := &mockStore{distinct: map[string][]string{
		part.FieldCategory: {"Brakes"},
		part.FieldName:     {"Front Brake Disc"},
		part.FieldColor:    {"Black", "Silver"},
	}}
	svc := newService(store)
	ctx := context.Background()

	cats, err := svc.Categories(ctx, "Yamaha", "FZ")
	require.NoError(t, err)
	assert.Equal(t, []string{"Brakes"}, cats)

	names, err := svc.PartNames(ctx, "Yamaha", "FZ", "Brakes")
	require.NoError(t, err)
	assert.Equal(t, []string{"Front Brake Disc"}, names)
	assert.Equal(t, []string{"brand=Yamaha", "model=FZ", "category=Brakes"}, keys(store.lastExpr))

	colors, err := svc.Colors(ctx, "Yamaha", "FZ", "Front Brake Disc")
	require.NoError(t, err)
	assert.Equal(t, []string{"Black", "Silver"}, colors)

	_, err = svc.PartNames(ctx, "Yamaha", "", "Brakes")
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestLookups_StoreFailureDegrades(t *testing.T) {
	store := &mockStore{err: errors.New("timeout")}
	svc := newService(store)
	ctx, deg := domain.NewContextWithDegradation(context.Background())

	assert.Empty(t, svc.Brands(ctx))
	years, err := svc.Years(ctx, "Honda", "Shine")
	require.NoError(t, err)
	assert.Empty(t, years)
	assert.Equal(t, []string{"store_unavailable"}, deg.Reasons())

	// Failures are not cached.
	svc.Brands(ctx)
	assert.Equal(t, 2, store.distinctCalls)
}

func TestSearchModels_DistinctRankedCapped(t *testing.T) {
	rows := []facet.Row{
		{Brand: "Bajaj", Model: "Pulsar 220"},
		{Brand: "Bajaj", Model: "Pulsar 150"},
		{Brand: "Bajaj", Model: "Pulsar 150"},
		{Brand: "Bajaj", Model: "Pulsar"},
	}
	for i := 0; i < 12; i++ {
		rows = append(rows, facet.Row{Brand: "Clone", Model: "Pulsar Custom " + string(rune('A'+i))})
	}
	store := &mockStore{rows: rows}
	svc := newService(store)

	got := svc.SearchModels(context.Background(), "pulsar")

	require.Len(t, got, 10)
	assert.Equal(t, ModelRef{Brand: "Bajaj", Model: "Pulsar"}, got[0], "shortest exact match ranks first")
	seen := map[ModelRef]bool{}
	for _, r := range got {
		assert.False(t, seen[r], "duplicate %v", r)
		seen[r] = true
	}
	assert.True(t, store.lastExpr.Must()[0].IsContains())
}

func TestSearchModels_EmptyQuery(t *testing.T) {
	store := &mockStore{}
	svc := newService(store)
	assert.Empty(t, svc.SearchModels(context.Background(), "  "))
	assert.Equal(t, 0, store.rowCalls)
}

func TestPart(t *testing.T) {
	svc := newService(&mockStore{})
	p, err := svc.Part(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), p.ID())

	_, err = svc.Part(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)

	missing := New(&mockStore{}, &mockGetter{err: domain.ErrPartNotFound}, cache.NewMemory(0, 0), nil)
	_, err = missing.Part(context.Background(), 9)
	assert.ErrorIs(t, err, domain.ErrPartNotFound)
}

func TestPartDetails(t *testing.T) {
	store := &mockStore{found: []part.Part{part.Reconstruct(part.Attrs{ID: 3, Name: "Clutch Cable"})}}
	svc := newService(store)

	p, err := svc.PartDetails(context.Background(), "Hero", "Splendor", 2018, "Clutch Cable")
	require.NoError(t, err)
	assert.Equal(t, int64(3), p.ID())
	assert.Equal(t, 1, store.lastLimit)
	assert.Len(t, store.lastExpr.Must(), 5) // brand, model, year_from, year_to, name

	store.found = nil
	_, err = svc.PartDetails(context.Background(), "Hero", "Splendor", 2018, "Clutch Cable")
	assert.ErrorIs(t, err, domain.ErrPartNotFound)

	_, err = svc.PartDetails(context.Background(), "Hero", "Splendor", 1700, "Clutch Cable")
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}
