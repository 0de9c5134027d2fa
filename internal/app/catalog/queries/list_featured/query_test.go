package list_featured

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-catalog/internal/app/catalog/contracts"
	"github.com/light-bringer/storefront-catalog/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-catalog/internal/app/catalog/repo"
	"github.com/light-bringer/storefront-catalog/internal/pkg/query"
)

func opts() Options {
	return Options{MinDiscount: 40, DefaultLimit: 4, MaxLimit: 100}
}

func TestQuery_Execute(t *testing.T) {
	store := repo.NewMemoryReadModel(
		&contracts.ProductDTO{ProductID: "01", Category: "Men", Discount: "40%"},
		&contracts.ProductDTO{ProductID: "02", Category: "Men", Discount: "39%"},
		&contracts.ProductDTO{ProductID: "03", Category: "Men", Discount: "55% off"},
		&contracts.ProductDTO{ProductID: "04", Category: "Men", Discount: ""},
		&contracts.ProductDTO{ProductID: "05", Category: "Women", Discount: "80%"},
		&contracts.ProductDTO{ProductID: "06", Category: "Men", Discount: "70%"},
		&contracts.ProductDTO{ProductID: "07", Category: "Men", Discount: "45%"},
		&contracts.ProductDTO{ProductID: "08", Category: "Men", Discount: "60%"},
	)
	q := NewQuery(store, opts())
	ctx := context.Background()

	t.Run("default limit newest first", func(t *testing.T) {
		resp, err := q.Execute(ctx, domain.CategoryMen, 0)
		require.NoError(t, err)

		got := make([]string, 0, len(resp.Products))
		for _, p := range resp.Products {
			got = append(got, p.ProductID)
		}
		assert.Equal(t, []string{"08", "07", "06", "03"}, got)
	})

	t.Run("explicit limit", func(t *testing.T) {
		resp, err := q.Execute(ctx, domain.CategoryMen, 10)
		require.NoError(t, err)
		assert.Len(t, resp.Products, 5)
	})

	t.Run("limit above max", func(t *testing.T) {
		_, err := q.Execute(ctx, domain.CategoryMen, 101)
		var verr *domain.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, domain.ParamLimit, verr.Field)
	})

	t.Run("no featured products", func(t *testing.T) {
		resp, err := q.Execute(ctx, domain.CategoryKids, 0)
		require.NoError(t, err)
		assert.NotNil(t, resp.Products)
		assert.Empty(t, resp.Products)
	})
}

func TestBuildPredicate(t *testing.T) {
	pred := BuildPredicate(domain.CategoryWomen, 40)

	for _, d := range []query.Dialect{query.Spanner, query.Postgres} {
		t.Run(d.Name(), func(t *testing.T) {
			sql, params := pred.SQL(d, 0)
			assert.Contains(t, sql, "discount IS NOT NULL AND ")
			assert.Equal(t, []interface{}{"Women", 40.0}, params)
		})
	}
}
