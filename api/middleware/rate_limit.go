package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/dmarroquin/shopwindow-backend/api/responses"
	pkgerrors "github.com/dmarroquin/shopwindow-backend/pkg/errors"
	"github.com/dmarroquin/shopwindow-backend/pkg/logger"
)

// SessionLimiter is the counter surface used for fixed-window limiting.
type SessionLimiter interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// RateLimitPolicy bounds how often one session may hit a route group.
type RateLimitPolicy struct {
	Scope  string
	Window time.Duration
	Limit  int64
}

// RateLimit applies a per-session fixed-window limit backed by redis. A redis
// outage fails open so shoppers are not locked out by the limiter itself.
func RateLimit(policy RateLimitPolicy, store SessionLimiter, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if store == nil || policy.Limit <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			scope := policy.Scope + ":" + SessionIDFromContext(ctx)
			allowed, count, err := store.FixedWindowAllow(ctx, scope, policy.Limit, policy.Window)
			if err != nil {
				if logg != nil {
					logg.Warn(logg.WithField(ctx, "scope", policy.Scope), "rate limiter unavailable, failing open")
				}
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				err := pkgerrors.New(pkgerrors.CodeRateLimit, "too many requests").
					WithDetails(map[string]any{"scope": policy.Scope, "count": count})
				responses.WriteError(ctx, logg, w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
