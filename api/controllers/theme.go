package controllers

import (
	"net/http"

	"github.com/dmarroquin/shopwindow-backend/api/middleware"
	"github.com/dmarroquin/shopwindow-backend/api/responses"
	themesvc "github.com/dmarroquin/shopwindow-backend/internal/theme"
	pkgerrors "github.com/dmarroquin/shopwindow-backend/pkg/errors"
	"github.com/dmarroquin/shopwindow-backend/pkg/logger"
)

// ThemeFetch returns the session's persisted dark mode preference.
func ThemeFetch(svc themesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := themeSession(r, svc == nil)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		flag, err := svc.Get(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, flag)
	}
}

// ThemeToggle flips and persists the preference.
func ThemeToggle(svc themesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := themeSession(r, svc == nil)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		flag, err := svc.Toggle(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, flag)
	}
}

func themeSession(r *http.Request, svcMissing bool) (string, error) {
	if svcMissing {
		return "", pkgerrors.New(pkgerrors.CodeInternal, "theme service unavailable")
	}
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "session context missing")
	}
	return sessionID, nil
}
