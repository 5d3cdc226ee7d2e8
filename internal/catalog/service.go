package catalog

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	pkgerrors "github.com/dmarroquin/shopwindow-backend/pkg/errors"
	"github.com/dmarroquin/shopwindow-backend/pkg/logger"
	"github.com/dmarroquin/shopwindow-backend/pkg/metrics"
	"github.com/dmarroquin/shopwindow-backend/pkg/redis"
)

const (
	opListProducts   = "list_products"
	opGetProduct     = "get_product"
	opListCategories = "list_categories"
)

// Fetcher is the upstream surface the service depends on.
type Fetcher interface {
	ListProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, id int) (*Product, error)
	ListCategories(ctx context.Context) ([]string, error)
	Ping(ctx context.Context) error
}

type cacheStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CacheKey(parts ...string) string
}

// Service exposes catalog reads with a best-effort redis cache in front of the
// upstream. Cache failures are logged and fall through to a live fetch.
type Service interface {
	ListProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, id int) (*Product, error)
	ListCategories(ctx context.Context) ([]string, error)
	Ping(ctx context.Context) error
}

type service struct {
	client   Fetcher
	cache    cacheStore
	cacheTTL time.Duration
	metrics  *metrics.CatalogMetrics
	logg     *logger.Logger
}

// ServiceParams groups dependencies for the catalog service.
type ServiceParams struct {
	Client   Fetcher
	Cache    cacheStore
	CacheTTL time.Duration
	Metrics  *metrics.CatalogMetrics
	Logger   *logger.Logger
}

// NewService builds a catalog service backed by the provided stack.
func NewService(params ServiceParams) (Service, error) {
	if params.Client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog client is required")
	}
	return &service{
		client:   params.Client,
		cache:    params.Cache,
		cacheTTL: params.CacheTTL,
		metrics:  params.Metrics,
		logg:     params.Logger,
	}, nil
}

// ListProducts returns the full product list, served from cache when possible.
func (s *service) ListProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if s.cacheLookup(ctx, opListProducts, s.cacheKey("products"), &products) {
		return products, nil
	}

	products, err := fetchTimed(ctx, s, opListProducts, s.client.ListProducts)
	if err != nil {
		return nil, err
	}
	s.cacheWrite(ctx, s.cacheKey("products"), products)
	return products, nil
}

// GetProduct returns a single product by id, served from cache when possible.
func (s *service) GetProduct(ctx context.Context, id int) (*Product, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id must be positive")
	}

	key := s.cacheKey("product", strconv.Itoa(id))
	var product *Product
	if s.cacheLookup(ctx, opGetProduct, key, &product) && product != nil {
		return product, nil
	}

	product, err := fetchTimed(ctx, s, opGetProduct, func(ctx context.Context) (*Product, error) {
		return s.client.GetProduct(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	s.cacheWrite(ctx, key, product)
	return product, nil
}

// ListCategories returns all category labels, served from cache when possible.
func (s *service) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if s.cacheLookup(ctx, opListCategories, s.cacheKey("categories"), &categories) {
		return categories, nil
	}

	categories, err := fetchTimed(ctx, s, opListCategories, s.client.ListCategories)
	if err != nil {
		return nil, err
	}
	s.cacheWrite(ctx, s.cacheKey("categories"), categories)
	return categories, nil
}

// Ping verifies the upstream catalog is reachable.
func (s *service) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

func fetchTimed[T any](ctx context.Context, s *service, operation string, fetch func(context.Context) (T, error)) (T, error) {
	start := time.Now()
	result, err := fetch(ctx)
	s.metrics.ObserveDuration(operation, time.Since(start))
	if err != nil {
		s.metrics.IncFailure(operation)
		var zero T
		return zero, err
	}
	s.metrics.IncSuccess(operation)
	return result, nil
}

func (s *service) cacheKey(parts ...string) string {
	if s.cache == nil {
		return ""
	}
	return s.cache.CacheKey(append([]string{"catalog"}, parts...)...)
}

func (s *service) cacheLookup(ctx context.Context, operation, key string, dest any) bool {
	if s.cache == nil || key == "" {
		return false
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !redis.IsNil(err) && s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "cache_key", key), "catalog cache read failed")
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "cache_key", key), "catalog cache entry corrupt, evicting")
		}
		// Evict so the next read repopulates instead of warning forever.
		if delErr := s.cache.Del(ctx, key); delErr != nil && s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "cache_key", key), "catalog cache eviction failed")
		}
		return false
	}
	s.metrics.IncCacheHit(operation)
	return true
}

func (s *service) cacheWrite(ctx context.Context, key string, value any) {
	if s.cache == nil || key == "" {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(payload), s.cacheTTL); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "cache_key", key), "catalog cache write failed")
	}
}
