package domain

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Query parameter names accepted by the listing endpoint.
const (
	ParamPage        = "page"
	ParamLimit       = "limit"
	ParamSubcategory = "subcategory"
	ParamType        = "type"
	ParamColors      = "colors"
	ParamSizes       = "sizes"
	ParamMinPrice    = "minPrice"
	ParamMaxPrice    = "maxPrice"
	ParamMinRating   = "minRating"
	ParamSortBy      = "sortBy"
)

// Limits bounds pagination and filter sizes.
type Limits struct {
	DefaultLimit    int
	MaxLimit        int
	MaxFilterValues int
}

// DefaultLimits returns the storefront defaults.
func DefaultLimits() Limits {
	return Limits{
		DefaultLimit:    12,
		MaxLimit:        100,
		MaxFilterValues: 32,
	}
}

// FilterParams is the untyped-but-parsed input to NewFilterSpec.
// Zero values mean "not supplied".
type FilterParams struct {
	Subcategories []string
	Types         []string
	Colors        []string
	Sizes         []string
	MinPrice      *float64
	MaxPrice      *float64
	MinRating     *float64
	SortBy        SortKey
	Page          int
	Limit         int
}

// FilterSpec is a validated listing request: filters, sort key and page window.
// It is immutable once built.
type FilterSpec struct {
	category      Category
	subcategories []string
	types         []string
	colors        []string
	sizes         []string
	minPrice      *float64
	maxPrice      *float64
	minRating     *float64
	sortBy        SortKey
	page          int
	limit         int
}

// NewFilterSpec normalizes and validates params for category.
// Sets are trimmed, emptied entries dropped and duplicates removed keeping the
// first occurrence; colors and sizes compare case-insensitively.
func NewFilterSpec(category Category, p FilterParams, limits Limits) (*FilterSpec, error) {
	if _, err := ParseCategory(string(category)); err != nil {
		return nil, err
	}

	spec := &FilterSpec{
		category:      category,
		subcategories: normalizeSet(p.Subcategories, false),
		types:         normalizeSet(p.Types, false),
		colors:        normalizeSet(p.Colors, true),
		sizes:         normalizeSet(p.Sizes, true),
		sortBy:        p.SortBy,
		page:          p.Page,
		limit:         p.Limit,
	}

	sets := []struct {
		field  string
		values []string
	}{
		{ParamSubcategory, spec.subcategories},
		{ParamType, spec.types},
		{ParamColors, spec.colors},
		{ParamSizes, spec.sizes},
	}
	for _, s := range sets {
		if limits.MaxFilterValues > 0 && len(s.values) > limits.MaxFilterValues {
			return nil, newValidationError(s.field, "at most %d values allowed, got %d", limits.MaxFilterValues, len(s.values))
		}
	}

	var err error
	if spec.minPrice, err = checkBound(ParamMinPrice, p.MinPrice); err != nil {
		return nil, err
	}
	if spec.maxPrice, err = checkBound(ParamMaxPrice, p.MaxPrice); err != nil {
		return nil, err
	}
	if spec.minRating, err = checkBound(ParamMinRating, p.MinRating); err != nil {
		return nil, err
	}
	if spec.minPrice != nil && spec.maxPrice != nil && *spec.minPrice > *spec.maxPrice {
		return nil, newValidationError(ParamMinPrice, "must not exceed maxPrice")
	}

	if _, err := ParseSortKey(string(spec.sortBy)); err != nil {
		return nil, err
	}

	if spec.page < 1 {
		spec.page = 1
	}
	if spec.limit <= 0 {
		spec.limit = limits.DefaultLimit
	}
	if limits.MaxLimit > 0 && spec.limit > limits.MaxLimit {
		return nil, newValidationError(ParamLimit, "must be at most %d", limits.MaxLimit)
	}

	return spec, nil
}

// ParseFilterSpec builds a FilterSpec from raw query parameters.
// Repeated keys are joined with commas before splitting. Numeric parameters
// parse strictly: a malformed value is rejected, never coerced.
func ParseFilterSpec(category Category, values url.Values, limits Limits) (*FilterSpec, error) {
	var p FilterParams
	var err error

	p.Subcategories = splitList(values[ParamSubcategory])
	p.Types = splitList(values[ParamType])
	p.Colors = splitList(values[ParamColors])
	p.Sizes = splitList(values[ParamSizes])

	if p.MinPrice, err = parseOptionalFloat(ParamMinPrice, values); err != nil {
		return nil, err
	}
	if p.MaxPrice, err = parseOptionalFloat(ParamMaxPrice, values); err != nil {
		return nil, err
	}
	if p.MinRating, err = parseOptionalFloat(ParamMinRating, values); err != nil {
		return nil, err
	}
	if p.Page, err = parseOptionalInt(ParamPage, values); err != nil {
		return nil, err
	}
	if p.Limit, err = parseOptionalInt(ParamLimit, values); err != nil {
		return nil, err
	}
	if p.SortBy, err = ParseSortKey(strings.TrimSpace(values.Get(ParamSortBy))); err != nil {
		return nil, err
	}

	return NewFilterSpec(category, p, limits)
}

// Category returns the listing category.
func (f *FilterSpec) Category() Category { return f.category }

// Subcategories returns the requested subcategories.
func (f *FilterSpec) Subcategories() []string { return cloneStrings(f.subcategories) }

// Types returns the requested product types.
func (f *FilterSpec) Types() []string { return cloneStrings(f.types) }

// Colors returns the requested color tokens.
func (f *FilterSpec) Colors() []string { return cloneStrings(f.colors) }

// Sizes returns the requested size tokens.
func (f *FilterSpec) Sizes() []string { return cloneStrings(f.sizes) }

// MinPrice returns the lower bound on discounted price, if any.
func (f *FilterSpec) MinPrice() (float64, bool) { return deref(f.minPrice) }

// MaxPrice returns the upper bound on discounted price, if any.
func (f *FilterSpec) MaxPrice() (float64, bool) { return deref(f.maxPrice) }

// MinRating returns the lower bound on rating, if any.
func (f *FilterSpec) MinRating() (float64, bool) { return deref(f.minRating) }

// SortBy returns the sort key.
func (f *FilterSpec) SortBy() SortKey { return f.sortBy }

// Page returns the 1-based page number.
func (f *FilterSpec) Page() int { return f.page }

// Limit returns the page size.
func (f *FilterSpec) Limit() int { return f.limit }

// Offset returns the number of rows skipped before the page. It saturates at
// math.MaxInt64, so a page too large to address reads as past the end.
func (f *FilterSpec) Offset() int64 {
	skipped, limit := int64(f.page-1), int64(f.limit)
	if limit > 0 && skipped > math.MaxInt64/limit {
		return math.MaxInt64
	}
	return skipped * limit
}

func checkBound(field string, v *float64) (*float64, error) {
	if v == nil {
		return nil, nil
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) {
		return nil, newValidationError(field, "must be a finite number")
	}
	if *v < 0 {
		return nil, newValidationError(field, "must not be negative")
	}
	cp := *v
	return &cp, nil
}

func parseOptionalFloat(field string, values url.Values) (*float64, error) {
	raw := strings.TrimSpace(values.Get(field))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, newValidationError(field, "%q is not a number", raw)
	}
	return &v, nil
}

func parseOptionalInt(field string, values url.Values) (int, error) {
	raw := strings.TrimSpace(values.Get(field))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, newValidationError(field, "%q is not an integer", raw)
	}
	return v, nil
}

// splitList joins repeated values with commas and splits the result.
func splitList(raw []string) []string {
	if len(raw) == 0 {
		return nil
	}
	return strings.Split(strings.Join(raw, ","), ",")
}

func normalizeSet(in []string, foldCase bool) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := v
		if foldCase {
			key = strings.ToLower(v)
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func deref(v *float64) (float64, bool) {
	if v == nil {
		return 0, false
	}
	return *v, true
}
