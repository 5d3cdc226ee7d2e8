package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/dmarroquin/shopwindow-backend/pkg/logger"
)

const sessionIDHeader = "X-Session-Id"

// Session resolves the shopper's session identifier. Clients send the header
// back on every request; first-time callers get a fresh id minted for them.
// The id is echoed on the response so the client can persist it.
func Session(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := r.Header.Get(sessionIDHeader)
			if _, err := uuid.Parse(sessionID); err != nil {
				sessionID = uuid.NewString()
			}

			w.Header().Set(sessionIDHeader, sessionID)

			ctx := WithSessionID(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
