package catalog

import "github.com/shopspring/decimal"

// Rating mirrors the upstream review summary attached to a product.
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Product is the storefront's read-only view of a catalog record. Instances
// are created on fetch and never mutated afterwards.
type Product struct {
	ID          int              `json:"id"`
	Name        string           `json:"name"`
	Price       decimal.Decimal  `json:"price"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	ImageURL    string           `json:"image_url"`
	Rating      *Rating          `json:"rating,omitempty"`
	OldPrice    *decimal.Decimal `json:"old_price,omitempty"`
	Discount    *int             `json:"discount,omitempty"`
}

// RatingRate returns the rate for ranking, with missing ratings counting as 0.
func (p Product) RatingRate() float64 {
	if p.Rating == nil {
		return 0
	}
	return p.Rating.Rate
}
