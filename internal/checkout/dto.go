package checkout

import (
	"time"

	"github.com/dmarroquin/shopwindow-backend/internal/cart"
	"github.com/dmarroquin/shopwindow-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// CheckoutForm is the shopper-submitted order form. Card fields are only
// required when paying by card; no charge is ever attempted.
type CheckoutForm struct {
	FirstName     string `json:"first_name" validate:"required,max=100"`
	LastName      string `json:"last_name" validate:"required,max=100"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required,max=32"`
	Address       string `json:"address" validate:"required,max=255"`
	City          string `json:"city" validate:"required,max=100"`
	ZipCode       string `json:"zip_code" validate:"required,max=20"`
	Country       string `json:"country" validate:"required,max=100"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=credit paypal"`
	CardNumber    string `json:"card_number" validate:"required_if=PaymentMethod credit,omitempty,numeric,min=12,max=19"`
	ExpiryDate    string `json:"expiry_date" validate:"required_if=PaymentMethod credit,omitempty,len=5"`
	CVV           string `json:"cvv" validate:"required_if=PaymentMethod credit,omitempty,numeric,min=3,max=4"`
}

// Order is the recorded result of a checkout. Items and totals are snapshotted
// from the cart at submission time.
type Order struct {
	ID            string              `json:"id"`
	CreatedAt     time.Time           `json:"created_at"`
	Status        enums.OrderStatus   `json:"status"`
	PaymentMethod enums.PaymentMethod `json:"payment_method"`
	CardSuffix    string              `json:"card_suffix,omitempty"`
	Email         string              `json:"email"`
	Items         []cart.LineItem     `json:"items"`
	ItemCount     int                 `json:"item_count"`
	Subtotal      decimal.Decimal     `json:"subtotal"`
	Tax           decimal.Decimal     `json:"tax"`
	Total         decimal.Decimal     `json:"total"`
}
