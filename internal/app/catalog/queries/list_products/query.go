package list_products

import (
	"context"

	"github.com/light-bringer/storefront-catalog/internal/app/catalog/contracts"
	"github.com/light-bringer/storefront-catalog/internal/app/catalog/domain"
)

// Response is the listing payload.
type Response struct {
	Data       []*contracts.ProductDTO `json:"data"`
	Total      int64                   `json:"total"`
	Page       int                     `json:"page"`
	Limit      int                     `json:"limit"`
	TotalPages int64                   `json:"totalPages"`
}

// Query handles the product listing use case.
type Query struct {
	readModel contracts.ReadModel
}

// NewQuery creates a new list products query.
func NewQuery(readModel contracts.ReadModel) *Query {
	return &Query{
		readModel: readModel,
	}
}

// Execute runs the count and page reads for spec and assembles the response.
func (q *Query) Execute(ctx context.Context, spec *domain.FilterSpec) (*Response, error) {
	req := &contracts.SearchRequest{
		Predicate: BuildPredicate(spec),
		Ordering:  ResolveOrdering(spec.SortBy()),
		Limit:     int64(spec.Limit()),
		Offset:    spec.Offset(),
	}

	result, err := q.readModel.Search(ctx, req)
	if err != nil {
		return nil, err
	}

	return Assemble(result, spec), nil
}

// Assemble builds the response payload. Data is never nil.
func Assemble(result *contracts.SearchResult, spec *domain.FilterSpec) *Response {
	data := result.Products
	if data == nil {
		data = []*contracts.ProductDTO{}
	}
	return &Response{
		Data:       data,
		Total:      result.Total,
		Page:       spec.Page(),
		Limit:      spec.Limit(),
		TotalPages: domain.TotalPages(result.Total, spec.Limit()),
	}
}
