package list_products

import (
	"github.com/light-bringer/storefront-catalog/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-catalog/internal/models/m_product"
	"github.com/light-bringer/storefront-catalog/internal/pkg/query"
)

// BuildPredicate converts a FilterSpec into the listing predicate.
//
// Clause order is fixed: category, subcategories, types, minPrice, maxPrice,
// minRating, colors, sizes. Price bounds apply to the discounted price.
// Colors and sizes match by case-insensitive substring against the stored
// comma-separated text, so "red" also matches "Dark Red".
func BuildPredicate(spec *domain.FilterSpec) *query.Predicate {
	conds := []query.Condition{
		query.Eq(m_product.Category, spec.Category().String()),
	}

	if v := spec.Subcategories(); len(v) > 0 {
		conds = append(conds, query.In(m_product.Subcategory, v))
	}
	if v := spec.Types(); len(v) > 0 {
		conds = append(conds, query.In(m_product.Type, v))
	}
	if v, ok := spec.MinPrice(); ok {
		conds = append(conds, query.Gte(m_product.DiscountedPrice, v))
	}
	if v, ok := spec.MaxPrice(); ok {
		conds = append(conds, query.Lte(m_product.DiscountedPrice, v))
	}
	if v, ok := spec.MinRating(); ok {
		conds = append(conds, query.Gte(m_product.Rating, v))
	}
	if v := spec.Colors(); len(v) > 0 {
		conds = append(conds, query.ContainsAny(m_product.Colors, v...))
	}
	if v := spec.Sizes(); len(v) > 0 {
		conds = append(conds, query.ContainsAny(m_product.Sizes, v...))
	}

	return query.NewPredicate(conds...)
}
