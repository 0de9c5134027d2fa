package list_featured

import (
	"context"

	"github.com/light-bringer/storefront-catalog/internal/app/catalog/contracts"
	"github.com/light-bringer/storefront-catalog/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-catalog/internal/models/m_product"
	"github.com/light-bringer/storefront-catalog/internal/pkg/query"
)

// Options configures which products count as featured.
type Options struct {
	MinDiscount  float64
	DefaultLimit int
	MaxLimit     int
}

// Response is the featured products payload.
type Response struct {
	Products []*contracts.ProductDTO `json:"products"`
}

// Query handles the featured products use case.
type Query struct {
	readModel contracts.ReadModel
	opts      Options
}

// NewQuery creates a new list featured query.
func NewQuery(readModel contracts.ReadModel, opts Options) *Query {
	return &Query{
		readModel: readModel,
		opts:      opts,
	}
}

// Execute returns up to limit products of category whose discount is at least
// the configured minimum, newest identifiers first. A non-positive limit uses
// the default.
func (q *Query) Execute(ctx context.Context, category domain.Category, limit int) (*Response, error) {
	if limit <= 0 {
		limit = q.opts.DefaultLimit
	}
	if q.opts.MaxLimit > 0 && limit > q.opts.MaxLimit {
		return nil, &domain.ValidationError{Field: domain.ParamLimit, Message: "exceeds maximum"}
	}

	req := &contracts.SearchRequest{
		Predicate: BuildPredicate(category, q.opts.MinDiscount),
		Ordering:  query.Ordering{query.By(m_product.ProductID, query.Desc)},
		Limit:     int64(limit),
		SkipCount: true,
	}

	result, err := q.readModel.Search(ctx, req)
	if err != nil {
		return nil, err
	}

	products := result.Products
	if products == nil {
		products = []*contracts.ProductDTO{}
	}
	return &Response{Products: products}, nil
}

// BuildPredicate selects products of category carrying a discount of at least
// minDiscount percent. Rows without a discount label never qualify.
func BuildPredicate(category domain.Category, minDiscount float64) *query.Predicate {
	return query.NewPredicate(
		query.Eq(m_product.Category, category.String()),
		query.IsNotNull(m_product.Discount),
		query.PercentGte(m_product.Discount, minDiscount),
	)
}
