package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmarroquin/shopwindow-backend/api/responses"
	"github.com/dmarroquin/shopwindow-backend/api/validators"
	"github.com/dmarroquin/shopwindow-backend/internal/browse"
	"github.com/dmarroquin/shopwindow-backend/internal/catalog"
	"github.com/dmarroquin/shopwindow-backend/pkg/enums"
	pkgerrors "github.com/dmarroquin/shopwindow-backend/pkg/errors"
	"github.com/dmarroquin/shopwindow-backend/pkg/logger"
)

// ProductList serves the catalog filtered and sorted by query parameters.
func ProductList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		criteria, err := criteriaFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		products, err := svc.ListProducts(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result := browse.Apply(products, criteria)
		responses.WriteSuccess(w, map[string]any{
			"products": result,
			"count":    len(result),
		})
	}
}

// ProductDetail serves a single product by id.
func ProductDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID, err := validators.ParsePathInt(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetProduct(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// CategoryList serves the known category labels.
func CategoryList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		categories, err := svc.ListCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"categories": categories})
	}
}

func criteriaFromQuery(r *http.Request) (browse.Criteria, error) {
	query := r.URL.Query()

	sortKey, err := enums.ParseSortKey(strings.TrimSpace(query.Get("sort")))
	if err != nil {
		return browse.Criteria{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sort key").
			WithDetails(map[string]any{"field": "sort"})
	}

	return browse.Criteria{
		Category: strings.TrimSpace(query.Get("category")),
		Query:    strings.TrimSpace(query.Get("q")),
		MinPrice: browse.ParsePrice(query.Get("min_price")),
		MaxPrice: browse.ParsePrice(query.Get("max_price")),
		Sort:     sortKey,
	}, nil
}
