package list_products

import (
	"github.com/light-bringer/storefront-catalog/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-catalog/internal/models/m_product"
	"github.com/light-bringer/storefront-catalog/internal/pkg/query"
)

// ResolveOrdering maps a sort key to a total ordering.
// Every ordering ends with product_id ascending so ties paginate stably.
func ResolveOrdering(key domain.SortKey) query.Ordering {
	tieBreak := query.By(m_product.ProductID, query.Asc)

	switch key {
	case domain.SortPriceLow:
		return query.Ordering{query.By(m_product.DiscountedPrice, query.Asc), tieBreak}
	case domain.SortPriceHigh:
		return query.Ordering{query.By(m_product.DiscountedPrice, query.Desc), tieBreak}
	case domain.SortRatingHigh:
		return query.Ordering{query.By(m_product.Rating, query.Desc), tieBreak}
	case domain.SortRatingLow:
		return query.Ordering{query.By(m_product.Rating, query.Asc), tieBreak}
	case domain.SortDiscountHigh:
		return query.Ordering{query.ByPercent(m_product.Discount, query.Desc), tieBreak}
	default:
		return query.Ordering{tieBreak}
	}
}
