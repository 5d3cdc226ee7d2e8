package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/dmarroquin/shopwindow-backend/pkg/config"
)

// CORS returns middleware that applies the API's allowed origin policy. The
// storefront single-page app is the only intended caller.
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Session-Id", "X-Requested-With"},
		ExposedHeaders:   []string{"X-Session-Id", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
