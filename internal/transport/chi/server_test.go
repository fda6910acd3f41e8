package chi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/cache"
	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/db/sqldb"
	dompart "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/part"
	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/search/filter"
	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/metrics"
	cartrepo "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/repository/cart"
	customerrepo "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/repository/customer"
	orderrepo "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/repository/order"
	partrepo "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/repository/part"
	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/repository/partcache"
	cartuc "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/usecase/cart"
	cataloguc "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/usecase/catalog"
	customeruc "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/usecase/customer"
	facetuc "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/usecase/facet"
	healthuc "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/usecase/health"
	orderuc "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/usecase/order"
	searchuc "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/usecase/search"
)

const adminKey = "admin-secret"

type harness struct {
	handler http.Handler
	db      *sqldb.DB
	ids     []int64
}

func yr(v int) *int { return &v }

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctx := context.Background()

	d, err := sqldb.OpenMemory(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	attrs := []dompart.Attrs{
		{Name: "Front Brake Disc", Brand: "Yamaha", Model: "FZ", Category: "Brakes",
			YearFrom: yr(2015), YearTo: yr(2017), Price: 1450, Stock: 4, Color: "Silver"},
		{Name: "Disc Brake Pad", Brand: "Yamaha", Model: "FZ", Category: "Brakes",
			YearFrom: yr(2016), YearTo: yr(2016), Price: 320, Stock: 10},
		{Name: "Chain Sprocket Kit", Brand: "Honda", Model: "Shine", Category: "Transmission",
			Price: 2100, Stock: 2},
	}
	parts := make([]dompart.Part, len(attrs))
	for i, a := range attrs {
		p, err := dompart.New(a)
		require.NoError(t, err)
		parts[i] = p
	}
	store := partrepo.New(d)
	_, err = store.Insert(ctx, parts)
	require.NoError(t, err)

	all, err := store.Find(ctx, emptyFilter(), 10)
	require.NoError(t, err)
	ids := make([]int64, len(all))
	for i := range all {
		ids[i] = all[i].ID()
	}

	sel := cache.Fallback(cache.Config{MaxEntries: 100, EvictBatch: 10})
	getter := partcache.New(store, 100, time.Minute, metrics.PartCacheTotal)
	carts := cartrepo.New(sel.Cache)

	srv := NewServer(Services{
		Search:    searchuc.New(store, searchuc.NewRanker(nil), nil),
		Facets:    facetuc.New(store, sel.Cache, nil),
		Catalog:   cataloguc.New(store, getter, sel.Cache, nil),
		Carts:     cartuc.New(getter, carts, nil),
		Orders:    orderuc.New(carts, orderrepo.New(d), nil, nil),
		Customers: customeruc.New(customerrepo.New(d), nil),
		Health:    healthuc.New(d, sel),
	}, nil)

	return &harness{
		handler: srv.Routes(RouterConfig{CORSOrigins: []string{"*"}, APIKeys: []string{adminKey}}),
		db:      d,
		ids:     ids,
	}
}

func (h *harness) do(t *testing.T, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, http.NoBody)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rr := httptest.NewRecorder()
	h.handler.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func TestListParts_RanksByQuery(t *testing.T) {
	h := newHarness(t)

	rr := h.do(t, "GET", "/api/parts?search=brake+disc", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Header().Get(DegradedHeader))
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))

	body := decode[struct {
		Parts []partResponse `json:"parts"`
	}](t, rr)
	require.NotEmpty(t, body.Parts)
	assert.Equal(t, "Front Brake Disc", body.Parts[0].Name)
}

func TestListParts_StructuralFilters(t *testing.T) {
	h := newHarness(t)

	rr := h.do(t, "GET", "/api/parts?brand=Honda", "")
	require.Equal(t, http.StatusOK, rr.Code)
	body := decode[struct {
		Parts []partResponse `json:"parts"`
	}](t, rr)
	require.Len(t, body.Parts, 1)
	assert.Equal(t, "Chain Sprocket Kit", body.Parts[0].Name)
	assert.Nil(t, body.Parts[0].YearFrom)

	rr = h.do(t, "GET", "/api/parts?year=abc", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, CodeBadRequest, decode[ErrorResponse](t, rr).Code)
}

func TestListParts_StoreDownIsDegradedNotError(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.db.Close())

	rr := h.do(t, "GET", "/api/parts?search=brake", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "store_unavailable", rr.Header().Get(DegradedHeader))
	assert.JSONEq(t, `{"parts":[]}`, rr.Body.String())

	rr = h.do(t, "GET", "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestGetPart(t *testing.T) {
	h := newHarness(t)

	rr := h.do(t, "GET", "/api/parts/"+itoa(h.ids[0]), "")
	require.Equal(t, http.StatusOK, rr.Code)
	body := decode[struct {
		Part partResponse `json:"part"`
	}](t, rr)
	assert.Equal(t, "Front Brake Disc", body.Part.Name)
	require.NotNil(t, body.Part.Color)
	assert.Equal(t, "Silver", *body.Part.Color)

	rr = h.do(t, "GET", "/api/parts/999999", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, CodePartNotFound, decode[ErrorResponse](t, rr).Code)

	rr = h.do(t, "GET", "/api/parts/abc", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLookups(t *testing.T) {
	h := newHarness(t)

	rr := h.do(t, "GET", "/api/years/Yamaha/FZ", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"years":[2017,2016,2015]}`, rr.Body.String())

	rr = h.do(t, "GET", "/api/brands", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"brands":["Honda","Yamaha"]}`, rr.Body.String())

	rr = h.do(t, "GET", "/api/part-names/Yamaha/FZ/Brakes", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"part_names":["Disc Brake Pad","Front Brake Disc"]}`, rr.Body.String())

	rr = h.do(t, "GET", "/api/filters", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"Yamaha"`)
}

func TestCartAndOrderFlow(t *testing.T) {
	h := newHarness(t)
	pad := itoa(h.ids[1])

	rr := h.do(t, "POST", "/api/cart/add", `{"user_id":42,"part_id":`+pad+`,"quantity":2}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.JSONEq(t, `{"success":true,"message":"Item added to cart"}`, rr.Body.String())

	rr = h.do(t, "POST", "/api/cart/add", `{"user_id":42,"part_id":`+pad+`}`)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = h.do(t, "GET", "/api/cart/42", "")
	require.Equal(t, http.StatusOK, rr.Code)
	cart := decode[cartResponse](t, rr)
	require.Len(t, cart.Cart, 1)
	assert.Equal(t, 3, cart.Cart[0].CartQuantity)
	assert.InDelta(t, 960.0, cart.Total, 0.001)

	rr = h.do(t, "POST", "/api/profile", `{"user_id":42,"full_name":"Ravi Kumar","phone":"+91 98765 43210","address":"12 MG Road, Pune"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = h.do(t, "POST", "/api/orders", `{"user_id":42,"notes":"call before delivery"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	placed := decode[struct {
		Success bool          `json:"success"`
		Order   orderResponse `json:"order"`
	}](t, rr)
	assert.True(t, placed.Success)
	assert.Equal(t, "pending", placed.Order.Status)
	assert.Equal(t, "Ravi Kumar", placed.Order.FullName)
	assert.Equal(t, "12 MG Road, Pune", placed.Order.Address)
	assert.InDelta(t, 960.0, placed.Order.TotalAmount, 0.001)
	assert.True(t, strings.HasPrefix(placed.Order.OrderID, "ORD-"))

	rr = h.do(t, "GET", "/api/cart/42", "")
	assert.JSONEq(t, `{"cart":[],"total":0}`, rr.Body.String())

	rr = h.do(t, "POST", "/api/orders", `{"user_id":42}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, CodeCartEmpty, decode[ErrorResponse](t, rr).Code)

	rr = h.do(t, "GET", "/api/orders/42", "")
	require.Equal(t, http.StatusOK, rr.Code)
	orders := decode[struct {
		Orders []orderResponse `json:"orders"`
	}](t, rr)
	require.Len(t, orders.Orders, 1)
	assert.Equal(t, placed.Order.OrderID, orders.Orders[0].OrderID)
}

func TestRemoveCartItem(t *testing.T) {
	h := newHarness(t)
	disc, kit := itoa(h.ids[0]), itoa(h.ids[2])

	h.do(t, "POST", "/api/cart/add", `{"user_id":7,"part_id":`+disc+`}`)
	h.do(t, "POST", "/api/cart/add", `{"user_id":7,"part_id":`+kit+`}`)

	rr := h.do(t, "DELETE", "/api/cart/7/items/"+disc, "")
	require.Equal(t, http.StatusOK, rr.Code)
	cart := decode[cartResponse](t, rr)
	require.Len(t, cart.Cart, 1)
	assert.Equal(t, "Chain Sprocket Kit", cart.Cart[0].Name)

	rr = h.do(t, "DELETE", "/api/cart/7/items/"+disc, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = h.do(t, "DELETE", "/api/cart/7", "")
	require.Equal(t, http.StatusOK, rr.Code)
	rr = h.do(t, "GET", "/api/cart/7", "")
	assert.JSONEq(t, `{"cart":[],"total":0}`, rr.Body.String())
}

func TestAddToCart_Validation(t *testing.T) {
	h := newHarness(t)

	rr := h.do(t, "POST", "/api/cart/add", `{"user_id":0,"part_id":1}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, CodeValidationFailed, decode[ErrorResponse](t, rr).Code)

	rr = h.do(t, "POST", "/api/cart/add", `{"user_id":1,"part_id":1,"quantity":100}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = h.do(t, "POST", "/api/cart/add", `not json`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, CodeBadRequest, decode[ErrorResponse](t, rr).Code)

	rr = h.do(t, "POST", "/api/cart/add", `{"user_id":1,"part_id":999999}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, CodePartNotFound, decode[ErrorResponse](t, rr).Code)
}

func TestProfile(t *testing.T) {
	h := newHarness(t)

	rr := h.do(t, "GET", "/api/profile/5", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, CodeProfileNotFound, decode[ErrorResponse](t, rr).Code)

	rr = h.do(t, "POST", "/api/profile", `{"user_id":5,"full_name":"Asha","phone":"abc","address":"Pune"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = h.do(t, "POST", "/api/profile", `{"user_id":5,"full_name":"Asha","phone":"9876543210","address":"Pune"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success":true,"message":"Profile saved successfully"}`, rr.Body.String())

	rr = h.do(t, "GET", "/api/profile/5", "")
	require.Equal(t, http.StatusOK, rr.Code)
	body := decode[struct {
		Profile profileResponse `json:"profile"`
	}](t, rr)
	assert.Equal(t, "Asha", body.Profile.FullName)
	assert.Equal(t, "9876543210", body.Profile.Phone)
}

func TestRegisterCustomer(t *testing.T) {
	h := newHarness(t)

	rr := h.do(t, "POST", "/api/customers", `{"user_id":9,"username":"@ravi","first_name":"Ravi"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	c := decode[customerResponse](t, rr)
	assert.Equal(t, int64(9), c.UserID)
	assert.Equal(t, "ravi", c.Username)
}

func TestAdminOrders(t *testing.T) {
	h := newHarness(t)
	auth := []string{"Authorization", "Bearer " + adminKey}

	rr := h.do(t, "GET", "/api/admin/orders", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	h.do(t, "POST", "/api/cart/add", `{"user_id":3,"part_id":`+itoa(h.ids[2])+`}`)
	rr = h.do(t, "POST", "/api/orders", `{"user_id":3,"full_name":"Dev","phone":"9000000000","delivery_address":"Nashik"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	placed := decode[struct {
		Order orderResponse `json:"order"`
	}](t, rr)

	rr = h.do(t, "GET", "/api/admin/orders?status=pending", "", auth...)
	require.Equal(t, http.StatusOK, rr.Code)
	list := decode[struct {
		Orders []orderResponse `json:"orders"`
	}](t, rr)
	require.Len(t, list.Orders, 1)

	path := "/api/admin/orders/" + itoa(placed.Order.ID) + "/status"
	rr = h.do(t, "PATCH", path, `{"status":"shipped"}`, auth...)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	updated := decode[struct {
		Order orderResponse `json:"order"`
	}](t, rr)
	assert.Equal(t, "shipped", updated.Order.Status)

	rr = h.do(t, "PATCH", path, `{"status":"lost"}`, auth...)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, CodeValidationFailed, decode[ErrorResponse](t, rr).Code)

	rr = h.do(t, "PATCH", "/api/admin/orders/999999/status", `{"status":"shipped"}`, auth...)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = h.do(t, "GET", "/api/admin/orders?status=bogus", "", auth...)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, CodeInvalidStatus, decode[ErrorResponse](t, rr).Code)

	rr = h.do(t, "POST", "/api/admin/cache/invalidate", "", auth...)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestInvalidateCatalogCache_RefreshesPartByID(t *testing.T) {
	h := newHarness(t)
	path := "/api/parts/" + itoa(h.ids[0])
	price := func() float64 {
		rr := h.do(t, "GET", path, "")
		require.Equal(t, http.StatusOK, rr.Code)
		return decode[struct {
			Part partResponse `json:"part"`
		}](t, rr).Part.Price
	}

	require.Equal(t, 1450.0, price())
	_, err := h.db.Conn().ExecContext(context.Background(),
		"UPDATE "+sqldb.TableParts+" SET price = ? WHERE id = ?", 1299.0, h.ids[0])
	require.NoError(t, err)
	assert.Equal(t, 1450.0, price(), "served from the part cache")

	rr := h.do(t, "POST", "/api/admin/cache/invalidate", "", "Authorization", "Bearer "+adminKey)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1299.0, price())
}

func TestHealth(t *testing.T) {
	h := newHarness(t)

	rr := h.do(t, "GET", "/health", "")
	require.Equal(t, http.StatusOK, rr.Code)
	body := decode[healthResponse](t, rr)
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, cache.BackendMemory, body.CacheBackend)
	assert.Equal(t, "ok", body.Checks[healthuc.CheckCatalog])
}

func TestRecoverer_ReturnsJSON(t *testing.T) {
	handler := jsonRecoverer(zapNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/", http.NoBody))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"code":"internal_error","message":"internal error"}`, rr.Body.String())
}

func TestRateLimit(t *testing.T) {
	handler := rateLimitMiddleware(1)(okHandler())

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest("GET", "/api/brands", http.NoBody))
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest("GET", "/api/brands", http.NoBody))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, CodeRateLimited, decode[ErrorResponse](t, second).Code)
}

func itoa(v int64) string { return strconv.FormatInt(v, 10) }

func emptyFilter() filter.Expression { return filter.Expression{} }

func zapNop() *zap.Logger { return zap.NewNop() }
