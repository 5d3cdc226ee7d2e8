package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmarroquin/shopwindow-backend/api/middleware"
	"github.com/dmarroquin/shopwindow-backend/api/responses"
	"github.com/dmarroquin/shopwindow-backend/api/validators"
	cartsvc "github.com/dmarroquin/shopwindow-backend/internal/cart"
	pkgerrors "github.com/dmarroquin/shopwindow-backend/pkg/errors"
	"github.com/dmarroquin/shopwindow-backend/pkg/logger"
)

// AddCartItemRequest is the body of a cart add.
type AddCartItemRequest struct {
	ProductID int `json:"product_id" validate:"required,gt=0"`
}

// CartFetch returns the session's cart with derived totals.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionFromRequest(r, svc == nil)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, svc.Get(r.Context(), sessionID))
	}
}

// CartAddItem puts one unit of a product into the cart.
func CartAddItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionFromRequest(r, svc == nil)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload AddCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.AddProduct(r.Context(), sessionID, payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// CartDecreaseItem lowers a line's quantity by one.
func CartDecreaseItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, productID, err := cartItemTarget(r, svc == nil)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, svc.DecreaseProduct(r.Context(), sessionID, productID))
	}
}

// CartRemoveItem drops a line regardless of quantity.
func CartRemoveItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, productID, err := cartItemTarget(r, svc == nil)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, svc.RemoveProduct(r.Context(), sessionID, productID))
	}
}

// CartClear empties the cart.
func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionFromRequest(r, svc == nil)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, svc.Clear(r.Context(), sessionID))
	}
}

func sessionFromRequest(r *http.Request, svcMissing bool) (string, error) {
	if svcMissing {
		return "", pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable")
	}
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "session context missing")
	}
	return sessionID, nil
}

func cartItemTarget(r *http.Request, svcMissing bool) (string, int, error) {
	sessionID, err := sessionFromRequest(r, svcMissing)
	if err != nil {
		return "", 0, err
	}
	productID, err := validators.ParsePathInt(chi.URLParam(r, "productId"), "productId")
	if err != nil {
		return "", 0, err
	}
	return sessionID, productID, nil
}
