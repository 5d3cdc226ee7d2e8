package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmarroquin/shopwindow-backend/internal/cart"
	"github.com/dmarroquin/shopwindow-backend/internal/catalog"
	"github.com/dmarroquin/shopwindow-backend/internal/checkout"
	"github.com/dmarroquin/shopwindow-backend/internal/theme"
	"github.com/dmarroquin/shopwindow-backend/pkg/config"
	pkgerrors "github.com/dmarroquin/shopwindow-backend/pkg/errors"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubCatalogService struct {
	products []catalog.Product
}

func (s *stubCatalogService) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	return s.products, nil
}

func (s *stubCatalogService) GetProduct(ctx context.Context, id int) (*catalog.Product, error) {
	for i := range s.products {
		if s.products[i].ID == id {
			return &s.products[i], nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

func (s *stubCatalogService) ListCategories(ctx context.Context) ([]string, error) {
	return []string{"electronics"}, nil
}

func (s *stubCatalogService) Ping(ctx context.Context) error {
	return nil
}

type stubFlagStore struct {
	data map[string]string
}

func (s *stubFlagStore) Get(ctx context.Context, key string) (string, error) {
	v, ok := s.data[key]
	if !ok {
		return "", goredis.Nil
	}
	return v, nil
}

func (s *stubFlagStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	s.data[key] = value.(string)
	return nil
}

func (s *stubFlagStore) ThemeKey(sessionID string) string {
	return "sw:theme:" + sessionID
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: config.AppEnvDev, Port: "8080"},
		Cart: config.CartConfig{
			RateLimitWindow: time.Minute,
			RateLimitMax:    100,
		},
		Theme: config.ThemeConfig{TTL: time.Hour},
		CORS:  config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	catalogSvc := &stubCatalogService{products: []catalog.Product{
		{ID: 1, Name: "Wireless Headphones", Price: decimal.RequireFromString("99.99"), Category: "electronics"},
	}}

	cartSvc, err := cart.NewService(cart.ServiceParams{Store: cart.NewStore(), Catalog: catalogSvc})
	if err != nil {
		t.Fatalf("cart.NewService: %v", err)
	}
	themeSvc, err := theme.NewService(theme.ServiceParams{Store: &stubFlagStore{data: map[string]string{}}, TTL: time.Hour})
	if err != nil {
		t.Fatalf("theme.NewService: %v", err)
	}
	checkoutSvc, err := checkout.NewService(checkout.ServiceParams{Cart: cartSvc})
	if err != nil {
		t.Fatalf("checkout.NewService: %v", err)
	}

	return NewRouter(RouterParams{
		Config:          testConfig(),
		RedisPinger:     stubPinger{},
		CatalogService:  catalogSvc,
		CartService:     cartSvc,
		ThemeService:    themeSvc,
		CheckoutService: checkoutSvc,
	})
}

func doRequest(t *testing.T, router http.Handler, method, target, sessionID, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if sessionID != "" {
		req.Header.Set("X-Session-Id", sessionID)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestHealthRoutes(t *testing.T) {
	router := newTestRouter(t)

	if resp := doRequest(t, router, http.MethodGet, "/health/live", "", ""); resp.Code != http.StatusOK {
		t.Fatalf("live: expected 200 got %d", resp.Code)
	}
	if resp := doRequest(t, router, http.MethodGet, "/health/ready", "", ""); resp.Code != http.StatusOK {
		t.Fatalf("ready: expected 200 got %d", resp.Code)
	}
}

func TestProductRoutes(t *testing.T) {
	router := newTestRouter(t)

	resp := doRequest(t, router, http.MethodGet, "/api/v1/products?category=electronics&sort=price-low", "", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	resp = doRequest(t, router, http.MethodGet, "/api/v1/products/1", "", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("detail: expected 200 got %d", resp.Code)
	}

	resp = doRequest(t, router, http.MethodGet, "/api/v1/products/999", "", "")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("unknown product: expected 404 got %d", resp.Code)
	}

	resp = doRequest(t, router, http.MethodGet, "/api/v1/products?sort=bogus", "", "")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("bad sort: expected 400 got %d", resp.Code)
	}

	resp = doRequest(t, router, http.MethodGet, "/api/v1/categories", "", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("categories: expected 200 got %d", resp.Code)
	}
}

func TestSessionHeaderIsMintedAndEchoed(t *testing.T) {
	router := newTestRouter(t)

	resp := doRequest(t, router, http.MethodGet, "/api/v1/cart", "", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if resp.Header().Get("X-Session-Id") == "" {
		t.Fatal("response should carry a minted session id")
	}
}

func TestCartFlowAcrossRequests(t *testing.T) {
	router := newTestRouter(t)
	sessionID := "b3a9f2ce-4a1f-4c8e-9d2b-6f0a4be9d711"

	resp := doRequest(t, router, http.MethodPost, "/api/v1/cart/items", sessionID, `{"product_id":1}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("add: expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	resp = doRequest(t, router, http.MethodPost, "/api/v1/cart/items", sessionID, `{"product_id":1}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("second add: expected 200 got %d", resp.Code)
	}

	resp = doRequest(t, router, http.MethodGet, "/api/v1/cart", sessionID, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("fetch: expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data cart.CartDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode cart: %v", err)
	}
	if envelope.Data.ItemCount != 2 {
		t.Fatalf("expected 2 items, got %d", envelope.Data.ItemCount)
	}

	resp = doRequest(t, router, http.MethodPost, "/api/v1/cart/items/1/decrease", sessionID, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("decrease: expected 200 got %d", resp.Code)
	}
	resp = doRequest(t, router, http.MethodDelete, "/api/v1/cart/items/1", sessionID, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("remove: expected 200 got %d", resp.Code)
	}
	resp = doRequest(t, router, http.MethodDelete, "/api/v1/cart", sessionID, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("clear: expected 200 got %d", resp.Code)
	}
}

func TestThemeRoutes(t *testing.T) {
	router := newTestRouter(t)
	sessionID := "7f0c1a52-88a4-41f5-9e63-2dc1f0b6a0cd"

	resp := doRequest(t, router, http.MethodGet, "/api/v1/theme", sessionID, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("fetch: expected 200 got %d", resp.Code)
	}

	resp = doRequest(t, router, http.MethodPost, "/api/v1/theme/toggle", sessionID, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("toggle: expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data theme.FlagDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode flag: %v", err)
	}
	if !envelope.Data.DarkMode {
		t.Fatal("first toggle should enable dark mode")
	}
}

func TestCheckoutRoute(t *testing.T) {
	router := newTestRouter(t)
	sessionID := "e5d20a77-43f2-4f3e-8a0f-1b2c3d4e5f60"

	if resp := doRequest(t, router, http.MethodPost, "/api/v1/cart/items", sessionID, `{"product_id":1}`); resp.Code != http.StatusOK {
		t.Fatalf("add: expected 200 got %d", resp.Code)
	}

	body := `{
		"first_name": "Dana",
		"last_name": "Kovacs",
		"email": "dana@example.com",
		"phone": "+15550100",
		"address": "12 Hill St",
		"city": "Springfield",
		"zip_code": "12345",
		"country": "US",
		"payment_method": "paypal"
	}`
	resp := doRequest(t, router, http.MethodPost, "/api/v1/checkout", sessionID, body)
	if resp.Code != http.StatusCreated {
		t.Fatalf("checkout: expected 201 got %d: %s", resp.Code, resp.Body.String())
	}

	resp = doRequest(t, router, http.MethodGet, "/api/v1/orders", sessionID, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("orders: expected 200 got %d", resp.Code)
	}

	resp = doRequest(t, router, http.MethodGet, "/api/v1/cart", sessionID, "")
	var envelope struct {
		Data cart.CartDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode cart: %v", err)
	}
	if envelope.Data.ItemCount != 0 {
		t.Fatalf("cart should be empty after checkout, got %d items", envelope.Data.ItemCount)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	resp := doRequest(t, router, http.MethodGet, "/metrics", "", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}
