package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/light-bringer/storefront-catalog/internal/app/catalog/contracts"
	"github.com/light-bringer/storefront-catalog/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-catalog/internal/pkg/query"
)

const backendPostgres = "postgres"

// PostgresReadModel implements ReadModel for PostgreSQL.
type PostgresReadModel struct {
	pool *pgxpool.Pool
}

// NewPostgresReadModel creates a new PostgreSQL ReadModel. The pool is owned by the caller.
func NewPostgresReadModel(pool *pgxpool.Pool) *PostgresReadModel {
	return &PostgresReadModel{
		pool: pool,
	}
}

// Search runs the count and page statements in one read-only repeatable-read
// transaction so both observe the same snapshot.
func (rm *PostgresReadModel) Search(ctx context.Context, req *contracts.SearchRequest) (*contracts.SearchResult, error) {
	countStmt, pageStmt := searchStatements(req, query.Postgres)

	tx, err := rm.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return nil, queryError(ctx, backendPostgres, "begin", "", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var total int64
	if !req.SkipCount {
		if err := tx.QueryRow(ctx, countStmt.SQL, countStmt.Params...).Scan(&total); err != nil {
			return nil, queryError(ctx, backendPostgres, "count", countStmt.SQL, err)
		}
	}

	rows, err := tx.Query(ctx, pageStmt.SQL, pageStmt.Params...)
	if err != nil {
		return nil, queryError(ctx, backendPostgres, "page", pageStmt.SQL, err)
	}
	products, err := pgx.CollectRows(rows, scanProduct)
	if err != nil {
		return nil, queryError(ctx, backendPostgres, "page", pageStmt.SQL, err)
	}
	if products == nil {
		products = []*contracts.ProductDTO{}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, queryError(ctx, backendPostgres, "commit", "", err)
	}

	if req.SkipCount {
		total = int64(len(products))
	}
	return &contracts.SearchResult{Products: products, Total: total}, nil
}

// FacetRows streams the facet projection of every product in category.
func (rm *PostgresReadModel) FacetRows(ctx context.Context, category string, fn func(contracts.FacetRow)) error {
	stmt := facetStatement(category, query.Postgres)

	rows, err := rm.pool.Query(ctx, stmt.SQL, stmt.Params...)
	if err != nil {
		return queryError(ctx, backendPostgres, "facets", stmt.SQL, err)
	}
	defer rows.Close()

	for rows.Next() {
		var subcategory, productType, colors, sizes *string
		if err := rows.Scan(&subcategory, &productType, &colors, &sizes); err != nil {
			return queryError(ctx, backendPostgres, "facets", stmt.SQL, fmt.Errorf("failed to parse facet row: %w", err))
		}
		fn(contracts.FacetRow{
			Subcategory: deref(subcategory),
			Type:        deref(productType),
			Colors:      deref(colors),
			Sizes:       deref(sizes),
		})
	}
	if err := rows.Err(); err != nil {
		return queryError(ctx, backendPostgres, "facets", stmt.SQL, err)
	}
	return nil
}

// GetByURL retrieves a product DTO by URL slug.
func (rm *PostgresReadModel) GetByURL(ctx context.Context, category, productURL string) (*contracts.ProductDTO, error) {
	stmt := detailStatement(category, productURL, query.Postgres)

	rows, err := rm.pool.Query(ctx, stmt.SQL, stmt.Params...)
	if err != nil {
		return nil, queryError(ctx, backendPostgres, "get_by_url", stmt.SQL, err)
	}

	dto, err := pgx.CollectOneRow(rows, scanProduct)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, queryError(ctx, backendPostgres, "get_by_url", stmt.SQL, err)
	}
	return dto, nil
}

// Ping checks that a pooled connection is usable.
func (rm *PostgresReadModel) Ping(ctx context.Context) error {
	if err := rm.pool.Ping(ctx); err != nil {
		return queryError(ctx, backendPostgres, "ping", "", err)
	}
	return nil
}

// scanProduct reads one row in m_product.ListColumns order.
func scanProduct(row pgx.CollectableRow) (*contracts.ProductDTO, error) {
	var (
		dto                                         contracts.ProductDTO
		subcategory, productType, discount, colors *string
		sizes, imageMIME                            *string
		details                                     []byte
		createdAt                                   time.Time
	)

	err := row.Scan(
		&dto.ProductID,
		&dto.Category,
		&subcategory,
		&productType,
		&dto.Name,
		&dto.ProductURL,
		&dto.Price,
		&dto.DiscountedPrice,
		&discount,
		&dto.Rating,
		&dto.Reviews,
		&colors,
		&sizes,
		&imageMIME,
		&dto.HasImage,
		&details,
		&createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse product: %w", err)
	}

	dto.Subcategory = deref(subcategory)
	dto.Type = deref(productType)
	dto.Discount = deref(discount)
	dto.Colors = deref(colors)
	dto.Sizes = deref(sizes)
	dto.ImageMIME = deref(imageMIME)
	dto.CreatedAt = createdAt.UTC()
	if len(details) > 0 {
		dto.Details = details
	}
	return &dto, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
