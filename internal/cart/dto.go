package cart

import "github.com/shopspring/decimal"

// TaxRate is the flat sales tax applied to the cart subtotal.
var TaxRate = decimal.RequireFromString("0.10")

// Totals carries the derived money fields of a cart.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// CartDTO is the API projection of one session's cart.
type CartDTO struct {
	Items     []LineItem      `json:"items"`
	ItemCount int             `json:"item_count"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Tax       decimal.Decimal `json:"tax"`
	Total     decimal.Decimal `json:"total"`
}

// ComputeTotals derives subtotal, tax and total from the given lines. Tax is
// rounded to cents before it is added to the subtotal.
func ComputeTotals(lines []LineItem) Totals {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	tax := subtotal.Mul(TaxRate).Round(2)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}

// ItemCount sums the quantities across all lines.
func ItemCount(lines []LineItem) int {
	count := 0
	for _, line := range lines {
		count += line.Quantity
	}
	return count
}

func toDTO(lines []LineItem) CartDTO {
	totals := ComputeTotals(lines)
	return CartDTO{
		Items:     lines,
		ItemCount: ItemCount(lines),
		Subtotal:  totals.Subtotal,
		Tax:       totals.Tax,
		Total:     totals.Total,
	}
}
