package get_facets

import (
	"context"

	"github.com/light-bringer/storefront-catalog/internal/app/catalog/contracts"
	"github.com/light-bringer/storefront-catalog/internal/app/catalog/domain"
)

// Query handles the filter options use case.
type Query struct {
	readModel contracts.ReadModel
}

// NewQuery creates a new get facets query.
func NewQuery(readModel contracts.ReadModel) *Query {
	return &Query{
		readModel: readModel,
	}
}

// Execute scans every product of category and returns its distinct
// subcategories, types, colors and sizes, each sorted ascending.
func (q *Query) Execute(ctx context.Context, category domain.Category) (*contracts.FacetOptions, error) {
	collector := domain.NewFacetCollector()

	err := q.readModel.FacetRows(ctx, category.String(), func(row contracts.FacetRow) {
		collector.Add(row.Subcategory, row.Type, row.Colors, row.Sizes)
	})
	if err != nil {
		return nil, err
	}

	return &contracts.FacetOptions{
		Subcategories: collector.Subcategories(),
		Types:         collector.Types(),
		Colors:        collector.Colors(),
		Sizes:         collector.Sizes(),
	}, nil
}
