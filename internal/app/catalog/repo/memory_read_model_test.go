package repo

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-catalog/internal/app/catalog/contracts"
	"github.com/light-bringer/storefront-catalog/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-catalog/internal/models/m_product"
	"github.com/light-bringer/storefront-catalog/internal/pkg/query"
)

func product(id, category string, discounted float64, colors, discount string) *contracts.ProductDTO {
	return &contracts.ProductDTO{
		ProductID:       id,
		Category:        category,
		Subcategory:     "Topwear",
		Type:            "Shirt",
		Name:            "Product " + id,
		ProductURL:      "product-" + id,
		Price:           discounted * 2,
		DiscountedPrice: discounted,
		Discount:        discount,
		Rating:          4,
		Colors:          colors,
		Sizes:           "M, L",
	}
}

func ids(products []*contracts.ProductDTO) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ProductID
	}
	return out
}

func TestMemoryReadModel_Search(t *testing.T) {
	rm := NewMemoryReadModel(
		product("a", "Men", 300, "Red, Navy Blue", "20%"),
		product("b", "Men", 100, "Black", "40% off"),
		product("c", "Men", 200, "Dark red", ""),
		product("d", "Women", 50, "Red", "70%"),
		product("e", "Men", 100, "White", "55%"),
	)
	ctx := context.Background()
	men := query.Eq(m_product.Category, "Men")
	tieBreak := query.By(m_product.ProductID, query.Asc)

	t.Run("category and price ordering with tie-break", func(t *testing.T) {
		res, err := rm.Search(ctx, &contracts.SearchRequest{
			Predicate: query.NewPredicate(men),
			Ordering:  query.Ordering{query.By(m_product.DiscountedPrice, query.Asc), tieBreak},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(4), res.Total)
		assert.Equal(t, []string{"b", "e", "c", "a"}, ids(res.Products))
	})

	t.Run("substring color match is case-insensitive", func(t *testing.T) {
		res, err := rm.Search(ctx, &contracts.SearchRequest{
			Predicate: query.NewPredicate(men, query.ContainsAny(m_product.Colors, "RED")),
			Ordering:  query.Ordering{tieBreak},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "c"}, ids(res.Products))
	})

	t.Run("discount ordering puts missing discounts last", func(t *testing.T) {
		res, err := rm.Search(ctx, &contracts.SearchRequest{
			Predicate: query.NewPredicate(men),
			Ordering:  query.Ordering{query.ByPercent(m_product.Discount, query.Desc), tieBreak},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"e", "b", "a", "c"}, ids(res.Products))
	})

	t.Run("percent comparison", func(t *testing.T) {
		res, err := rm.Search(ctx, &contracts.SearchRequest{
			Predicate: query.NewPredicate(men, query.PercentGte(m_product.Discount, 40)),
			Ordering:  query.Ordering{query.By(m_product.ProductID, query.Desc)},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"e", "b"}, ids(res.Products))
	})

	t.Run("set membership and bounds", func(t *testing.T) {
		res, err := rm.Search(ctx, &contracts.SearchRequest{
			Predicate: query.NewPredicate(
				men,
				query.In(m_product.Type, []string{"Shirt"}),
				query.Gte(m_product.DiscountedPrice, 150),
				query.Lte(m_product.DiscountedPrice, 300),
			),
			Ordering: query.Ordering{tieBreak},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "c"}, ids(res.Products))
	})

	t.Run("window", func(t *testing.T) {
		res, err := rm.Search(ctx, &contracts.SearchRequest{
			Predicate: query.NewPredicate(men),
			Ordering:  query.Ordering{tieBreak},
			Limit:     2,
			Offset:    2,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(4), res.Total)
		assert.Equal(t, []string{"c", "e"}, ids(res.Products))
	})

	t.Run("offset past end", func(t *testing.T) {
		res, err := rm.Search(ctx, &contracts.SearchRequest{
			Predicate: query.NewPredicate(men),
			Ordering:  query.Ordering{tieBreak},
			Limit:     2,
			Offset:    10,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(4), res.Total)
		assert.NotNil(t, res.Products)
		assert.Empty(t, res.Products)
	})

	t.Run("skip count", func(t *testing.T) {
		res, err := rm.Search(ctx, &contracts.SearchRequest{
			Predicate: query.NewPredicate(men),
			Ordering:  query.Ordering{tieBreak},
			Limit:     1,
			SkipCount: true,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.Total)
	})

	t.Run("unknown column", func(t *testing.T) {
		_, err := rm.Search(ctx, &contracts.SearchRequest{
			Predicate: query.NewPredicate(query.Eq("nope", "x")),
		})
		var qerr *domain.QueryExecutionError
		require.True(t, errors.As(err, &qerr))
		assert.False(t, qerr.Timeout)
	})

	t.Run("results are copies", func(t *testing.T) {
		res, err := rm.Search(ctx, &contracts.SearchRequest{Predicate: query.NewPredicate(men)})
		require.NoError(t, err)
		res.Products[0].Name = "mutated"

		again, err := rm.Search(ctx, &contracts.SearchRequest{Predicate: query.NewPredicate(men)})
		require.NoError(t, err)
		assert.NotEqual(t, "mutated", again.Products[0].Name)
	})
}

func TestMemoryReadModel_ExpiredContext(t *testing.T) {
	rm := NewMemoryReadModel(product("a", "Men", 1, "", ""))

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	_, err := rm.Search(ctx, &contracts.SearchRequest{})
	var qerr *domain.QueryExecutionError
	require.True(t, errors.As(err, &qerr))
	assert.True(t, qerr.Timeout)
}

func TestMemoryReadModel_NegativeOffset(t *testing.T) {
	rm := NewMemoryReadModel(product("a", "Men", 1, "", ""))

	_, err := rm.Search(context.Background(), &contracts.SearchRequest{Limit: 10, Offset: -1})
	var qerr *domain.QueryExecutionError
	require.True(t, errors.As(err, &qerr))
	assert.False(t, qerr.Timeout)
}

func TestMemoryReadModel_GetByURL(t *testing.T) {
	rm := NewMemoryReadModel(product("a", "Men", 1, "", ""), product("b", "Women", 1, "", ""))

	dto, err := rm.GetByURL(context.Background(), "Men", "product-a")
	require.NoError(t, err)
	assert.Equal(t, "a", dto.ProductID)

	_, err = rm.GetByURL(context.Background(), "Men", "product-b")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestMemoryReadModel_FacetRows(t *testing.T) {
	rm := NewMemoryReadModel(
		product("a", "Men", 1, "Red", ""),
		product("b", "Women", 1, "Blue", ""),
	)

	var rows []contracts.FacetRow
	err := rm.FacetRows(context.Background(), "Men", func(r contracts.FacetRow) {
		rows = append(rows, r)
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Red", rows[0].Colors)
}

func TestMemoryReadModel_AddReplacesByID(t *testing.T) {
	rm := NewMemoryReadModel(product("a", "Men", 1, "", ""))
	updated := product("a", "Men", 2, "", "")
	rm.Add(updated)

	snap := rm.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, 2.0, snap[0].DiscountedPrice)
}

func TestFixtureRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "products.json")
	w := NewFixtureWriter(path)

	require.NoError(t, w.Upsert(context.Background(), []*contracts.ProductDTO{product("a", "Men", 1, "Red", "")}))
	require.NoError(t, w.Upsert(context.Background(), []*contracts.ProductDTO{product("b", "Kids", 1, "Red", "")}))

	loaded, err := LoadFixture(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids(loaded))
}
