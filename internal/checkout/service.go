package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmarroquin/shopwindow-backend/internal/cart"
	"github.com/dmarroquin/shopwindow-backend/pkg/enums"
	pkgerrors "github.com/dmarroquin/shopwindow-backend/pkg/errors"
	"github.com/dmarroquin/shopwindow-backend/pkg/logger"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Service turns a session's cart into a recorded order.
type Service interface {
	SubmitOrder(ctx context.Context, sessionID string, form CheckoutForm) (*Order, error)
	ListOrders(ctx context.Context, sessionID string) []Order
}

type service struct {
	cart     cart.Service
	validate *validator.Validate
	logg     *logger.Logger

	mu     sync.Mutex
	orders map[string][]Order
}

// ServiceParams groups dependencies for the checkout service.
type ServiceParams struct {
	Cart   cart.Service
	Logger *logger.Logger
}

// NewService builds a checkout service.
func NewService(params ServiceParams) (Service, error) {
	if params.Cart == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart service is required")
	}
	return &service{
		cart:     params.Cart,
		validate: validator.New(),
		logg:     params.Logger,
		orders:   make(map[string][]Order),
	}, nil
}

// SubmitOrder validates the form, snapshots the cart into an order, and
// empties the cart. The order is held in memory for the session; nothing is
// shipped or charged.
func (s *service) SubmitOrder(ctx context.Context, sessionID string, form CheckoutForm) (*Order, error) {
	if err := s.validate.Struct(form); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid checkout form").
			WithDetails(validationDetails(err))
	}

	method, err := enums.ParsePaymentMethod(form.PaymentMethod)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method")
	}

	snapshot := s.cart.Get(ctx, sessionID)
	if len(snapshot.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	order := Order{
		ID:            uuid.NewString(),
		CreatedAt:     time.Now().UTC(),
		Status:        enums.OrderStatusPlaced,
		PaymentMethod: method,
		Email:         form.Email,
		Items:         snapshot.Items,
		ItemCount:     snapshot.ItemCount,
		Subtotal:      snapshot.Subtotal,
		Tax:           snapshot.Tax,
		Total:         snapshot.Total,
	}
	if method == enums.PaymentMethodCredit {
		order.CardSuffix = cardSuffix(form.CardNumber)
	}

	s.mu.Lock()
	s.orders[sessionID] = append(s.orders[sessionID], order)
	s.mu.Unlock()

	s.cart.Clear(ctx, sessionID)

	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "order_id", order.ID), "order placed")
	}
	return &order, nil
}

// ListOrders returns the session's placed orders, oldest first.
func (s *service) ListOrders(ctx context.Context, sessionID string) []Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	orders := make([]Order, len(s.orders[sessionID]))
	copy(orders, s.orders[sessionID])
	return orders
}

func cardSuffix(cardNumber string) string {
	if len(cardNumber) < 4 {
		return ""
	}
	return cardNumber[len(cardNumber)-4:]
}

func validationDetails(err error) any {
	var invalid validator.ValidationErrors
	if !errors.As(err, &invalid) {
		return nil
	}
	details := make(map[string]string, len(invalid))
	for _, field := range invalid {
		details[field.Field()] = fmt.Sprintf("failed on %q", field.Tag())
	}
	return details
}
