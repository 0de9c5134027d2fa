package get_facets

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-catalog/internal/app/catalog/contracts"
	"github.com/light-bringer/storefront-catalog/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-catalog/internal/app/catalog/repo"
)

type failingReadModel struct {
	contracts.ReadModel
	err error
}

func (f *failingReadModel) FacetRows(context.Context, string, func(contracts.FacetRow)) error {
	return f.err
}

func TestQuery_Execute(t *testing.T) {
	store := repo.NewMemoryReadModel(
		&contracts.ProductDTO{ProductID: "1", Category: "Men", Subcategory: "Topwear", Type: "Shirt", Colors: "Red, Navy Blue", Sizes: "M,L"},
		&contracts.ProductDTO{ProductID: "2", Category: "Men", Subcategory: "Bottomwear", Type: "Jeans", Colors: " Blue ,Red,,", Sizes: " S , M "},
		&contracts.ProductDTO{ProductID: "3", Category: "Men"},
		&contracts.ProductDTO{ProductID: "4", Category: "Women", Subcategory: "Dresses", Type: "Maxi", Colors: "Pink", Sizes: "XS"},
	)

	opts, err := NewQuery(store).Execute(context.Background(), domain.CategoryMen)
	require.NoError(t, err)

	assert.Equal(t, []string{"Bottomwear", "Topwear"}, opts.Subcategories)
	assert.Equal(t, []string{"Jeans", "Shirt"}, opts.Types)
	assert.Equal(t, []string{"Blue", "Navy Blue", "Red"}, opts.Colors)
	assert.Equal(t, []string{"L", "M", "S"}, opts.Sizes)
}

func TestQuery_EmptyCategory(t *testing.T) {
	opts, err := NewQuery(repo.NewMemoryReadModel()).Execute(context.Background(), domain.CategoryKids)
	require.NoError(t, err)

	assert.NotNil(t, opts.Colors)
	assert.Empty(t, opts.Colors)
	assert.Empty(t, opts.Subcategories)
}

func TestQuery_StoreFailure(t *testing.T) {
	cause := domain.NewQueryExecutionError("facets", false, errors.New("boom"))

	_, err := NewQuery(&failingReadModel{err: cause}).Execute(context.Background(), domain.CategoryMen)
	assert.ErrorIs(t, err, cause)
}
