package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dmarroquin/shopwindow-backend/api/middleware"
	cartsvc "github.com/dmarroquin/shopwindow-backend/internal/cart"
	"github.com/dmarroquin/shopwindow-backend/internal/catalog"
	pkgerrors "github.com/dmarroquin/shopwindow-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

type stubProductLookup struct{}

func (stubProductLookup) GetProduct(ctx context.Context, id int) (*catalog.Product, error) {
	if id != 1 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return &catalog.Product{ID: 1, Name: "Wireless Headphones", Price: decimal.RequireFromString("99.99")}, nil
}

func newCartService(t *testing.T) cartsvc.Service {
	t.Helper()
	svc, err := cartsvc.NewService(cartsvc.ServiceParams{Store: cartsvc.NewStore(), Catalog: stubProductLookup{}})
	if err != nil {
		t.Fatalf("cartsvc.NewService: %v", err)
	}
	return svc
}

func withSession(req *http.Request, sessionID string) *http.Request {
	return req.WithContext(middleware.WithSessionID(req.Context(), sessionID))
}

func TestCartAddItemSuccess(t *testing.T) {
	handler := CartAddItem(newCartService(t), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"product_id":1}`))
	req = withSession(req, "s1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data cartsvc.CartDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ItemCount != 1 {
		t.Fatalf("expected one item, got %d", envelope.Data.ItemCount)
	}
}

func TestCartAddItemUnknownProduct(t *testing.T) {
	handler := CartAddItem(newCartService(t), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"product_id":42}`))
	req = withSession(req, "s1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestCartAddItemInvalidBody(t *testing.T) {
	handler := CartAddItem(newCartService(t), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"product_id":0}`))
	req = withSession(req, "s1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartFetchMissingSession(t *testing.T) {
	handler := CartFetch(newCartService(t), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartServiceUnavailable(t *testing.T) {
	handler := CartFetch(nil, nil)

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil), "s1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", resp.Code)
	}
}
