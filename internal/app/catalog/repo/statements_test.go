package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-catalog/internal/app/catalog/contracts"
	"github.com/light-bringer/storefront-catalog/internal/models/m_product"
	"github.com/light-bringer/storefront-catalog/internal/pkg/query"
)

func TestSearchStatements_SharePredicate(t *testing.T) {
	req := &contracts.SearchRequest{
		Predicate: query.NewPredicate(
			query.Eq(m_product.Category, "Men"),
			query.ContainsAny(m_product.Colors, "red", "blue"),
		),
		Ordering: query.Ordering{query.By(m_product.DiscountedPrice, query.Asc), query.By(m_product.ProductID, query.Asc)},
		Limit:    12,
		Offset:   24,
	}

	for _, d := range []query.Dialect{query.Spanner, query.Postgres} {
		t.Run(d.Name(), func(t *testing.T) {
			count, page := searchStatements(req, d)

			n := req.Predicate.ParamCount()
			require.Len(t, count.Params, n)
			require.Len(t, page.Params, n+2)
			assert.Equal(t, count.Params, page.Params[:n])
			assert.Equal(t, int64(12), page.Params[n])
			assert.Equal(t, int64(24), page.Params[n+1])

			assert.Contains(t, count.SQL, "SELECT COUNT(*) FROM products WHERE")
			assert.NotContains(t, count.SQL, "ORDER BY")
			assert.Contains(t, page.SQL, "ORDER BY discounted_price ASC, product_id ASC LIMIT")
			assert.Contains(t, page.SQL, "(image IS NOT NULL) AS has_image")
		})
	}
}

func TestSearchStatements_PostgresText(t *testing.T) {
	req := &contracts.SearchRequest{
		Predicate: query.NewPredicate(query.Eq(m_product.Category, "Women")),
		Ordering:  query.Ordering{query.By(m_product.ProductID, query.Asc)},
		Limit:     5,
	}

	count, page := searchStatements(req, query.Postgres)
	assert.Equal(t, "SELECT COUNT(*) FROM products WHERE category = $1", count.SQL)
	assert.Contains(t, page.SQL, "WHERE category = $1 ORDER BY product_id ASC LIMIT $2 OFFSET $3")
}

func TestSearchStatements_NoLimitReadsAll(t *testing.T) {
	req := &contracts.SearchRequest{Predicate: query.NewPredicate(query.Eq(m_product.Category, "Kids"))}

	_, page := searchStatements(req, query.Spanner)
	assert.NotContains(t, page.SQL, "LIMIT")
}

func TestDetailStatement(t *testing.T) {
	stmt := detailStatement("Men", "blue-shirt", query.Spanner)

	assert.Contains(t, stmt.SQL, "WHERE category = @p0 AND product_url = @p1 LIMIT @p2 OFFSET @p3")
	assert.Equal(t, []interface{}{"Men", "blue-shirt", int64(1), int64(0)}, stmt.Params)
}

func TestFacetStatement(t *testing.T) {
	stmt := facetStatement("Kids", query.Postgres)

	assert.Equal(t, "SELECT subcategory, type, colors, sizes FROM products WHERE category = $1", stmt.SQL)
	assert.Equal(t, []interface{}{"Kids"}, stmt.Params)
}
