package cart

import (
	"context"

	"github.com/dmarroquin/shopwindow-backend/internal/catalog"
	pkgerrors "github.com/dmarroquin/shopwindow-backend/pkg/errors"
	"github.com/dmarroquin/shopwindow-backend/pkg/logger"
)

// productLookup is the slice of the catalog the cart needs.
type productLookup interface {
	GetProduct(ctx context.Context, id int) (*catalog.Product, error)
}

// Service mutates and reads per-session carts.
type Service interface {
	Get(ctx context.Context, sessionID string) CartDTO
	AddProduct(ctx context.Context, sessionID string, productID int) (CartDTO, error)
	DecreaseProduct(ctx context.Context, sessionID string, productID int) CartDTO
	RemoveProduct(ctx context.Context, sessionID string, productID int) CartDTO
	Clear(ctx context.Context, sessionID string) CartDTO
}

type service struct {
	store   *Store
	catalog productLookup
	logg    *logger.Logger
}

// ServiceParams groups dependencies for the cart service.
type ServiceParams struct {
	Store   *Store
	Catalog productLookup
	Logger  *logger.Logger
}

// NewService builds a cart service.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart store is required")
	}
	if params.Catalog == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog lookup is required")
	}
	return &service{
		store:   params.Store,
		catalog: params.Catalog,
		logg:    params.Logger,
	}, nil
}

// Get returns the session's cart.
func (s *service) Get(ctx context.Context, sessionID string) CartDTO {
	return toDTO(s.store.Lines(sessionID))
}

// AddProduct adds one unit of a product to the cart. The catalog is consulted
// only for products not already in the cart; repeat adds bump the quantity on
// the existing line in one store operation.
func (s *service) AddProduct(ctx context.Context, sessionID string, productID int) (CartDTO, error) {
	if lines, ok := s.store.Increment(sessionID, productID); ok {
		return toDTO(lines), nil
	}

	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return CartDTO{}, err
	}

	lines := s.store.Add(sessionID, LineItem{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		ImageURL:  product.ImageURL,
		Category:  product.Category,
	})
	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "product_id", product.ID), "product added to cart")
	}
	return toDTO(lines), nil
}

// DecreaseProduct lowers the quantity of a line by one; at quantity one the
// line disappears. Unknown products leave the cart unchanged.
func (s *service) DecreaseProduct(ctx context.Context, sessionID string, productID int) CartDTO {
	return toDTO(s.store.Decrease(sessionID, productID))
}

// RemoveProduct drops a line entirely. Unknown products leave the cart unchanged.
func (s *service) RemoveProduct(ctx context.Context, sessionID string, productID int) CartDTO {
	return toDTO(s.store.Remove(sessionID, productID))
}

// Clear empties the session's cart.
func (s *service) Clear(ctx context.Context, sessionID string) CartDTO {
	s.store.Clear(sessionID)
	return toDTO(nil)
}
