package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmarroquin/shopwindow-backend/api/controllers"
	"github.com/dmarroquin/shopwindow-backend/api/middleware"
	"github.com/dmarroquin/shopwindow-backend/internal/cart"
	"github.com/dmarroquin/shopwindow-backend/internal/catalog"
	"github.com/dmarroquin/shopwindow-backend/internal/checkout"
	"github.com/dmarroquin/shopwindow-backend/internal/theme"
	"github.com/dmarroquin/shopwindow-backend/pkg/config"
	"github.com/dmarroquin/shopwindow-backend/pkg/logger"
	"github.com/dmarroquin/shopwindow-backend/pkg/metrics"
)

// RouterParams carries everything the HTTP surface needs.
type RouterParams struct {
	Config          *config.Config
	Logger          *logger.Logger
	RedisPinger     controllers.Pinger
	SessionLimiter  middleware.SessionLimiter
	HTTPMetrics     *metrics.HTTPMetrics
	CatalogService  catalog.Service
	CartService     cart.Service
	ThemeService    theme.Service
	CheckoutService checkout.Service
}

func NewRouter(params RouterParams) http.Handler {
	cfg := params.Config
	logg := params.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Session(logg),
		middleware.Logging(logg),
		middleware.Metrics(params.HTTPMetrics),
		middleware.CORS(cfg.CORS),
	)

	cartPolicy := middleware.RateLimitPolicy{
		Scope:  "cart",
		Window: cfg.Cart.RateLimitWindow,
		Limit:  int64(cfg.Cart.RateLimitMax),
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, params.RedisPinger, params.CatalogService))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", controllers.ProductList(params.CatalogService, logg))
		r.Get("/products/{productId}", controllers.ProductDetail(params.CatalogService, logg))
		r.Get("/categories", controllers.CategoryList(params.CatalogService, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.RateLimit(cartPolicy, params.SessionLimiter, logg))
			r.Get("/", controllers.CartFetch(params.CartService, logg))
			r.Delete("/", controllers.CartClear(params.CartService, logg))
			r.Post("/items", controllers.CartAddItem(params.CartService, logg))
			r.Post("/items/{productId}/decrease", controllers.CartDecreaseItem(params.CartService, logg))
			r.Delete("/items/{productId}", controllers.CartRemoveItem(params.CartService, logg))
		})

		r.Route("/theme", func(r chi.Router) {
			r.Get("/", controllers.ThemeFetch(params.ThemeService, logg))
			r.Post("/toggle", controllers.ThemeToggle(params.ThemeService, logg))
		})

		r.Post("/checkout", controllers.Checkout(params.CheckoutService, logg))
		r.Get("/orders", controllers.OrderList(params.CheckoutService, logg))
	})

	return r
}
