package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	pkgerrors "github.com/dmarroquin/shopwindow-backend/pkg/errors"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

type fakeFetcher struct {
	listCalls     int
	products      []Product
	productErr    error
	categories    []string
	categoriesErr error
}

func (f *fakeFetcher) ListProducts(ctx context.Context) ([]Product, error) {
	f.listCalls++
	if f.productErr != nil {
		return nil, f.productErr
	}
	return f.products, nil
}

func (f *fakeFetcher) GetProduct(ctx context.Context, id int) (*Product, error) {
	if f.productErr != nil {
		return nil, f.productErr
	}
	for i := range f.products {
		if f.products[i].ID == id {
			return &f.products[i], nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

func (f *fakeFetcher) ListCategories(ctx context.Context) ([]string, error) {
	if f.categoriesErr != nil {
		return nil, f.categoriesErr
	}
	return f.categories, nil
}

func (f *fakeFetcher) Ping(ctx context.Context) error {
	return f.categoriesErr
}

type fakeCache struct {
	data map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string]string{}}
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) {
	v, ok := f.data[key]
	if !ok {
		return "", goredis.Nil
	}
	return v, nil
}

func (f *fakeCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	f.data[key] = value.(string)
	return nil
}

func (f *fakeCache) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.data, key)
	}
	return nil
}

func (f *fakeCache) CacheKey(parts ...string) string {
	key := "sw:cache"
	for _, part := range parts {
		key += ":" + part
	}
	return key
}

func sampleProducts() []Product {
	return []Product{
		{ID: 1, Name: "Wireless Headphones", Price: decimal.RequireFromString("99.99"), Category: "electronics"},
		{ID: 2, Name: "Smart Watch", Price: decimal.RequireFromString("199.99"), Category: "electronics"},
	}
}

func newCachedService(t *testing.T, fetcher Fetcher, cache cacheStore) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{Client: fetcher, Cache: cache, CacheTTL: time.Minute})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestServiceListProductsPopulatesCache(t *testing.T) {
	fetcher := &fakeFetcher{products: sampleProducts()}
	cache := newFakeCache()
	svc := newCachedService(t, fetcher, cache)

	first, err := svc.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("expected 2 products, got %d", len(first))
	}

	second, err := svc.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error on cached read: %v", err)
	}
	if len(second) != 2 {
		t.Fatalf("expected 2 cached products, got %d", len(second))
	}
	if fetcher.listCalls != 1 {
		t.Fatalf("second read should come from cache, upstream calls=%d", fetcher.listCalls)
	}
}

func TestServiceEvictsCorruptCacheEntry(t *testing.T) {
	fetcher := &fakeFetcher{products: sampleProducts()}
	cache := newFakeCache()
	svc := newCachedService(t, fetcher, cache)

	key := cache.CacheKey("catalog", "products")
	cache.data[key] = "{not json"

	products, err := svc.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("corrupt cache should fall through to upstream, got %d products", len(products))
	}
	if fetcher.listCalls != 1 {
		t.Fatalf("expected one upstream fetch, got %d", fetcher.listCalls)
	}
	if cache.data[key] == "{not json" {
		t.Fatal("corrupt entry should be replaced")
	}
}

func TestServiceListProductsUpstreamFailure(t *testing.T) {
	fetcher := &fakeFetcher{productErr: pkgerrors.Wrap(pkgerrors.CodeDependency, errors.New("socket closed"), "fetch products")}
	svc := newCachedService(t, fetcher, newFakeCache())

	_, err := svc.ListProducts(context.Background())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestServiceGetProduct(t *testing.T) {
	fetcher := &fakeFetcher{products: sampleProducts()}
	svc := newCachedService(t, fetcher, newFakeCache())

	product, err := svc.GetProduct(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product.Name != "Smart Watch" {
		t.Fatalf("unexpected product %+v", product)
	}

	if _, err := svc.GetProduct(context.Background(), 0); pkgerrors.As(err) == nil {
		t.Fatal("expected validation error for non-positive id")
	}
	_, err = svc.GetProduct(context.Background(), 42)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestServiceListCategories(t *testing.T) {
	fetcher := &fakeFetcher{categories: []string{"electronics", "jewelery"}}
	svc := newCachedService(t, fetcher, newFakeCache())

	categories, err := svc.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("unexpected categories %v", categories)
	}
}

func TestServiceWorksWithoutCache(t *testing.T) {
	fetcher := &fakeFetcher{products: sampleProducts()}
	svc := newCachedService(t, fetcher, nil)

	products, err := svc.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected products without cache, got %d", len(products))
	}
}

func TestNewServiceRequiresClient(t *testing.T) {
	if _, err := NewService(ServiceParams{}); err == nil {
		t.Fatal("expected error without client")
	}
}
