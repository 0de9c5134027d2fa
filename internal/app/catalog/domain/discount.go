package domain

import (
	"math"
	"regexp"
	"strconv"
)

// discountPattern matches the first decimal number of a discount label.
// Keep in sync with the pattern the SQL dialects extract with.
var discountPattern = regexp.MustCompile(`[0-9]+(?:\.[0-9]+)?`)

// ParseDiscountPercent extracts the numeric magnitude of a discount label such
// as "20%" or "40% off". It reports false when the label holds no number.
func ParseDiscountPercent(label string) (float64, bool) {
	m := discountPattern.FindString(label)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// DiscountedPrice applies the percentage in label to price, rounded to cents.
// A label without a number leaves the price unchanged.
func DiscountedPrice(price float64, label string) float64 {
	pct, ok := ParseDiscountPercent(label)
	if !ok || pct <= 0 {
		return price
	}
	if pct >= 100 {
		return 0
	}
	return math.Round(price*(100-pct)) / 100
}
