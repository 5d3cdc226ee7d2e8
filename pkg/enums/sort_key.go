package enums

import "fmt"

// SortKey selects the ordering applied to a filtered product list.
type SortKey string

const (
	SortDefault   SortKey = "default"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortName      SortKey = "name"
	SortRating    SortKey = "rating"
)

var validSortKeys = []SortKey{
	SortDefault,
	SortPriceLow,
	SortPriceHigh,
	SortName,
	SortRating,
}

// String implements fmt.Stringer.
func (s SortKey) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SortKey.
func (s SortKey) IsValid() bool {
	for _, candidate := range validSortKeys {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSortKey converts raw input into a SortKey. Empty input maps to SortDefault.
func ParseSortKey(value string) (SortKey, error) {
	if value == "" {
		return SortDefault, nil
	}
	for _, candidate := range validSortKeys {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sort key %q", value)
}
