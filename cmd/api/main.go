package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/dmarroquin/shopwindow-backend/api/routes"
	"github.com/dmarroquin/shopwindow-backend/internal/cart"
	"github.com/dmarroquin/shopwindow-backend/internal/catalog"
	"github.com/dmarroquin/shopwindow-backend/internal/checkout"
	"github.com/dmarroquin/shopwindow-backend/internal/theme"
	"github.com/dmarroquin/shopwindow-backend/pkg/config"
	"github.com/dmarroquin/shopwindow-backend/pkg/logger"
	"github.com/dmarroquin/shopwindow-backend/pkg/metrics"
	"github.com/dmarroquin/shopwindow-backend/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)
	catalogMetrics := metrics.NewCatalogMetrics(prometheus.DefaultRegisterer)

	catalogClient := catalog.NewClient(
		catalog.WithBaseURL(cfg.Catalog.BaseURL),
		catalog.WithHTTPClient(&http.Client{Timeout: cfg.Catalog.HTTPTimeout}),
	)
	catalogService, err := catalog.NewService(catalog.ServiceParams{
		Client:   catalogClient,
		Cache:    redisClient,
		CacheTTL: cfg.Catalog.CacheTTL,
		Metrics:  catalogMetrics,
		Logger:   logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(cart.ServiceParams{
		Store:   cart.NewStore(),
		Catalog: catalogService,
		Logger:  logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	themeService, err := theme.NewService(theme.ServiceParams{
		Store:  redisClient,
		TTL:    cfg.Theme.TTL,
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create theme service", err)
		os.Exit(1)
	}

	checkoutService, err := checkout.NewService(checkout.ServiceParams{
		Cart:   cartService,
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:          cfg,
			Logger:          logg,
			RedisPinger:     redisClient,
			SessionLimiter:  redisClient,
			HTTPMetrics:     httpMetrics,
			CatalogService:  catalogService,
			CartService:     cartService,
			ThemeService:    themeService,
			CheckoutService: checkoutService,
		}),
	}

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-stopCtx.Done():
		logg.Info(ctx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var closeErr error
	closeErr = multierr.Append(closeErr, server.Shutdown(shutdownCtx))
	closeErr = multierr.Append(closeErr, redisClient.Close())
	if closeErr != nil {
		logg.Error(ctx, "shutdown finished with errors", closeErr)
		os.Exit(1)
	}
	logg.Info(ctx, "shutdown complete")
}
