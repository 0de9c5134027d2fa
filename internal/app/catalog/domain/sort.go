package domain

// SortKey selects the ordering of a listing.
type SortKey string

const (
	SortNone         SortKey = ""
	SortPriceLow     SortKey = "price_low"
	SortPriceHigh    SortKey = "price_high"
	SortRatingHigh   SortKey = "rating_high"
	SortRatingLow    SortKey = "rating_low"
	SortDiscountHigh SortKey = "discount_high"
)

// ParseSortKey validates a raw sortBy value. The empty string means no sort.
func ParseSortKey(raw string) (SortKey, error) {
	switch k := SortKey(raw); k {
	case SortNone, SortPriceLow, SortPriceHigh, SortRatingHigh, SortRatingLow, SortDiscountHigh:
		return k, nil
	default:
		return "", newValidationError("sortBy", "unsupported value %q", raw)
	}
}
