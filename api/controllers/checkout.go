package controllers

import (
	"net/http"

	"github.com/dmarroquin/shopwindow-backend/api/middleware"
	"github.com/dmarroquin/shopwindow-backend/api/responses"
	"github.com/dmarroquin/shopwindow-backend/api/validators"
	checkoutsvc "github.com/dmarroquin/shopwindow-backend/internal/checkout"
	pkgerrors "github.com/dmarroquin/shopwindow-backend/pkg/errors"
	"github.com/dmarroquin/shopwindow-backend/pkg/logger"
)

const (
	defaultOrderLimit = 20
	maxOrderLimit     = 100
)

// Checkout validates the order form and converts the cart into a placed order.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		if sessionID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "session context missing"))
			return
		}

		var form checkoutsvc.CheckoutForm
		if err := validators.DecodeJSONBody(r, &form); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.SubmitOrder(r.Context(), sessionID, form)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// OrderList returns the session's placed orders, newest last, capped by the
// limit query parameter.
func OrderList(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		if sessionID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "session context missing"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", defaultOrderLimit, 1, maxOrderLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orders := svc.ListOrders(r.Context(), sessionID)
		if len(orders) > limit {
			orders = orders[len(orders)-limit:]
		}
		responses.WriteSuccess(w, map[string]any{"orders": orders})
	}
}
