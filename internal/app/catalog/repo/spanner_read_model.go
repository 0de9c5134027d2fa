package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/spanner"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/storefront-catalog/internal/app/catalog/contracts"
	"github.com/light-bringer/storefront-catalog/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-catalog/internal/models/m_product"
	"github.com/light-bringer/storefront-catalog/internal/pkg/query"
)

const backendSpanner = "spanner"

// SpannerReadModel implements ReadModel for Spanner.
type SpannerReadModel struct {
	client *spanner.Client
}

// NewSpannerReadModel creates a new Spanner ReadModel. The client is owned by the caller.
func NewSpannerReadModel(client *spanner.Client) *SpannerReadModel {
	return &SpannerReadModel{
		client: client,
	}
}

// Search runs the count and page statements concurrently inside one
// read-only transaction so both observe the same snapshot.
func (rm *SpannerReadModel) Search(ctx context.Context, req *contracts.SearchRequest) (*contracts.SearchResult, error) {
	countStmt, pageStmt := searchStatements(req, query.Spanner)

	txn := rm.client.ReadOnlyTransaction()
	defer txn.Close()

	var (
		total    int64
		products []*contracts.ProductDTO
	)

	g, gctx := errgroup.WithContext(ctx)
	if !req.SkipCount {
		g.Go(func() error {
			var err error
			total, err = rm.count(gctx, txn, countStmt)
			if err != nil {
				return queryError(ctx, backendSpanner, "count", countStmt.SQL, err)
			}
			return nil
		})
	}
	g.Go(func() error {
		var err error
		products, err = rm.page(gctx, txn, pageStmt)
		if err != nil {
			return queryError(ctx, backendSpanner, "page", pageStmt.SQL, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if req.SkipCount {
		total = int64(len(products))
	}
	return &contracts.SearchResult{Products: products, Total: total}, nil
}

// FacetRows streams the facet projection of every product in category.
func (rm *SpannerReadModel) FacetRows(ctx context.Context, category string, fn func(contracts.FacetRow)) error {
	stmt := facetStatement(category, query.Spanner)

	iter := rm.client.Single().Query(ctx, stmt.Spanner())
	defer iter.Stop()

	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return queryError(ctx, backendSpanner, "facets", stmt.SQL, err)
		}

		var data m_product.FacetData
		if err := row.ToStruct(&data); err != nil {
			return queryError(ctx, backendSpanner, "facets", stmt.SQL, fmt.Errorf("failed to parse facet row: %w", err))
		}
		fn(contracts.FacetRow{
			Subcategory: data.Subcategory.StringVal,
			Type:        data.Type.StringVal,
			Colors:      data.Colors.StringVal,
			Sizes:       data.Sizes.StringVal,
		})
	}
}

// GetByURL retrieves a product DTO by URL slug.
func (rm *SpannerReadModel) GetByURL(ctx context.Context, category, productURL string) (*contracts.ProductDTO, error) {
	stmt := detailStatement(category, productURL, query.Spanner)

	iter := rm.client.Single().Query(ctx, stmt.Spanner())
	defer iter.Stop()

	row, err := iter.Next()
	if err == iterator.Done {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, queryError(ctx, backendSpanner, "get_by_url", stmt.SQL, err)
	}

	dto, err := rowToDTO(row)
	if err != nil {
		return nil, queryError(ctx, backendSpanner, "get_by_url", stmt.SQL, err)
	}
	return dto, nil
}

// Ping runs a trivial query.
func (rm *SpannerReadModel) Ping(ctx context.Context) error {
	iter := rm.client.Single().Query(ctx, spanner.Statement{SQL: "SELECT 1"})
	defer iter.Stop()

	if _, err := iter.Next(); err != nil && err != iterator.Done {
		return queryError(ctx, backendSpanner, "ping", "SELECT 1", err)
	}
	return nil
}

func (rm *SpannerReadModel) count(ctx context.Context, txn *spanner.ReadOnlyTransaction, stmt query.Statement) (int64, error) {
	iter := txn.Query(ctx, stmt.Spanner())
	defer iter.Stop()

	row, err := iter.Next()
	if err != nil {
		return 0, fmt.Errorf("failed to read count: %w", err)
	}

	var total int64
	if err := row.Columns(&total); err != nil {
		return 0, fmt.Errorf("failed to parse count: %w", err)
	}
	return total, nil
}

func (rm *SpannerReadModel) page(ctx context.Context, txn *spanner.ReadOnlyTransaction, stmt query.Statement) ([]*contracts.ProductDTO, error) {
	iter := txn.Query(ctx, stmt.Spanner())
	defer iter.Stop()

	products := make([]*contracts.ProductDTO, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return products, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate products: %w", err)
		}

		dto, err := rowToDTO(row)
		if err != nil {
			return nil, err
		}
		products = append(products, dto)
	}
}

func rowToDTO(row *spanner.Row) (*contracts.ProductDTO, error) {
	var data m_product.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse product: %w", err)
	}
	return dataToDTO(&data)
}

// dataToDTO converts database Data to a ProductDTO.
func dataToDTO(data *m_product.Data) (*contracts.ProductDTO, error) {
	dto := &contracts.ProductDTO{
		ProductID:       data.ProductID,
		Category:        data.Category,
		Subcategory:     data.Subcategory.StringVal,
		Type:            data.Type.StringVal,
		Name:            data.Name,
		ProductURL:      data.ProductURL,
		Price:           data.Price,
		DiscountedPrice: data.DiscountedPrice,
		Discount:        data.Discount.StringVal,
		Rating:          data.Rating,
		Reviews:         data.Reviews,
		Colors:          data.Colors.StringVal,
		Sizes:           data.Sizes.StringVal,
		ImageMIME:       data.ImageMIME.StringVal,
		HasImage:        data.HasImage,
		CreatedAt:       data.CreatedAt,
	}

	if data.Details.Valid {
		raw, err := json.Marshal(data.Details.Value)
		if err != nil {
			return nil, fmt.Errorf("invalid details: %w", err)
		}
		dto.Details = raw
	}

	return dto, nil
}
