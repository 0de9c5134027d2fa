package get_product

import (
	"context"
	"strings"

	"github.com/light-bringer/storefront-catalog/internal/app/catalog/contracts"
	"github.com/light-bringer/storefront-catalog/internal/app/catalog/domain"
)

// Request identifies a product by its URL slug within a category.
type Request struct {
	Category   domain.Category
	ProductURL string
}

// Query handles the get product query use case.
type Query struct {
	readModel contracts.ReadModel
}

// NewQuery creates a new get product query.
func NewQuery(readModel contracts.ReadModel) *Query {
	return &Query{
		readModel: readModel,
	}
}

// Execute retrieves a product by URL slug.
func (q *Query) Execute(ctx context.Context, req *Request) (*contracts.ProductDTO, error) {
	slug := strings.TrimSpace(req.ProductURL)
	if slug == "" {
		return nil, &domain.ValidationError{Field: domain.ParamProductURL, Message: "is required"}
	}
	return q.readModel.GetByURL(ctx, req.Category.String(), slug)
}
