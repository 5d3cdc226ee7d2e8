package browse

import (
	"sort"
	"strings"

	"github.com/dmarroquin/shopwindow-backend/internal/catalog"
	"github.com/dmarroquin/shopwindow-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// CategoryAll is the sentinel meaning "no category filter".
const CategoryAll = "all"

// Criteria narrows and orders a product list. All predicates are conjunctive.
type Criteria struct {
	Category string
	Query    string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Sort     enums.SortKey
}

// ParsePrice turns raw user input into an optional price bound. Input that
// does not parse as a number is treated as "no constraint", never an error.
func ParsePrice(raw string) *decimal.Decimal {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	value, err := decimal.NewFromString(trimmed)
	if err != nil {
		return nil
	}
	return &value
}

// Apply filters then sorts the products. The input slice is never mutated;
// the result is always a fresh slice.
func Apply(products []catalog.Product, criteria Criteria) []catalog.Product {
	return Sort(Filter(products, criteria), criteria.Sort)
}

// Filter returns the products satisfying every active criterion, preserving
// input order.
func Filter(products []catalog.Product, criteria Criteria) []catalog.Product {
	query := strings.ToLower(criteria.Query)
	result := make([]catalog.Product, 0, len(products))
	for _, product := range products {
		if !matchesCategory(product, criteria.Category) {
			continue
		}
		if query != "" && !matchesQuery(product, query) {
			continue
		}
		if criteria.MinPrice != nil && product.Price.LessThan(*criteria.MinPrice) {
			continue
		}
		if criteria.MaxPrice != nil && product.Price.GreaterThan(*criteria.MaxPrice) {
			continue
		}
		result = append(result, product)
	}
	return result
}

// Sort orders a copy of the products by the given key. Equal keys keep their
// relative input order so repeated renders are reproducible.
func Sort(products []catalog.Product, key enums.SortKey) []catalog.Product {
	sorted := make([]catalog.Product, len(products))
	copy(sorted, products)

	switch key {
	case enums.SortPriceLow:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Price.LessThan(sorted[j].Price)
		})
	case enums.SortPriceHigh:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Price.GreaterThan(sorted[j].Price)
		})
	case enums.SortName:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Name < sorted[j].Name
		})
	case enums.SortRating:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].RatingRate() > sorted[j].RatingRate()
		})
	}

	return sorted
}

func matchesCategory(product catalog.Product, category string) bool {
	if category == "" || category == CategoryAll {
		return true
	}
	return product.Category == category
}

func matchesQuery(product catalog.Product, loweredQuery string) bool {
	return strings.Contains(strings.ToLower(product.Name), loweredQuery) ||
		strings.Contains(strings.ToLower(product.Description), loweredQuery)
}
