package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"cloud.google.com/go/spanner"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/light-bringer/storefront-catalog/internal/app/catalog/contracts"
	"github.com/light-bringer/storefront-catalog/internal/models/m_product"
	"github.com/light-bringer/storefront-catalog/internal/pkg/committer"
)

// ProductWriter upserts catalog products. It backs the seeder; the service
// itself never writes.
type ProductWriter interface {
	Upsert(ctx context.Context, products []*contracts.ProductDTO) error
}

// maxMutationsPerCommit keeps each Spanner commit well under the mutation limit.
const maxMutationsPerCommit = 500

// SpannerProductWriter writes products with insert-or-update mutations.
type SpannerProductWriter struct {
	committer *committer.Committer
	model     *m_product.Model
}

// NewSpannerProductWriter creates a Spanner product writer.
func NewSpannerProductWriter(client *spanner.Client) *SpannerProductWriter {
	return &SpannerProductWriter{
		committer: committer.NewCommitter(client),
		model:     m_product.NewModel(),
	}
}

// Upsert applies products in batches of maxMutationsPerCommit.
func (w *SpannerProductWriter) Upsert(ctx context.Context, products []*contracts.ProductDTO) error {
	plan := committer.NewPlan()
	for _, p := range products {
		data, err := DTOToData(p)
		if err != nil {
			return fmt.Errorf("product %s: %w", p.ProductID, err)
		}
		plan.Add(w.model.InsertMut(data))
	}

	if err := w.committer.ApplyInBatches(ctx, plan, maxMutationsPerCommit); err != nil {
		return fmt.Errorf("failed to apply products: %w", err)
	}
	return nil
}

// DTOToData converts a ProductDTO to the products table model.
func DTOToData(p *contracts.ProductDTO) (*m_product.Data, error) {
	data := &m_product.Data{
		ProductID:       p.ProductID,
		Category:        p.Category,
		Subcategory:     nullString(p.Subcategory),
		Type:            nullString(p.Type),
		Name:            p.Name,
		ProductURL:      p.ProductURL,
		Price:           p.Price,
		DiscountedPrice: p.DiscountedPrice,
		Discount:        nullString(p.Discount),
		Rating:          p.Rating,
		Reviews:         p.Reviews,
		Colors:          nullString(p.Colors),
		Sizes:           nullString(p.Sizes),
		ImageMIME:       nullString(p.ImageMIME),
	}
	if len(p.Details) > 0 {
		var v interface{}
		if err := json.Unmarshal(p.Details, &v); err != nil {
			return nil, fmt.Errorf("invalid details: %w", err)
		}
		data.Details = spanner.NullJSON{Value: v, Valid: true}
	}
	return data, nil
}

func nullString(s string) spanner.NullString {
	return spanner.NullString{StringVal: s, Valid: s != ""}
}

const postgresUpsertSQL = `INSERT INTO products (
	product_id, category, subcategory, type, product_name, product_url,
	price, discounted_price, discount, rating, reviews, colors, sizes,
	image_mime, details, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
ON CONFLICT (product_id) DO UPDATE SET
	category = EXCLUDED.category,
	subcategory = EXCLUDED.subcategory,
	type = EXCLUDED.type,
	product_name = EXCLUDED.product_name,
	product_url = EXCLUDED.product_url,
	price = EXCLUDED.price,
	discounted_price = EXCLUDED.discounted_price,
	discount = EXCLUDED.discount,
	rating = EXCLUDED.rating,
	reviews = EXCLUDED.reviews,
	colors = EXCLUDED.colors,
	sizes = EXCLUDED.sizes,
	image_mime = EXCLUDED.image_mime,
	details = EXCLUDED.details`

// PostgresProductWriter writes products with INSERT ... ON CONFLICT in one batch.
type PostgresProductWriter struct {
	pool *pgxpool.Pool
}

// NewPostgresProductWriter creates a PostgreSQL product writer.
func NewPostgresProductWriter(pool *pgxpool.Pool) *PostgresProductWriter {
	return &PostgresProductWriter{pool: pool}
}

// Upsert writes products in one transaction.
func (w *PostgresProductWriter) Upsert(ctx context.Context, products []*contracts.ProductDTO) error {
	return pgx.BeginFunc(ctx, w.pool, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, p := range products {
			var details interface{}
			if len(p.Details) > 0 {
				details = string(p.Details)
			}
			batch.Queue(postgresUpsertSQL,
				p.ProductID, p.Category, nullable(p.Subcategory), nullable(p.Type),
				p.Name, p.ProductURL, p.Price, p.DiscountedPrice, nullable(p.Discount),
				p.Rating, p.Reviews, nullable(p.Colors), nullable(p.Sizes),
				nullable(p.ImageMIME), details, p.CreatedAt,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to upsert products: %w", err)
		}
		return nil
	})
}

// FixtureWriter writes products to the JSON fixture read by the memory read model.
type FixtureWriter struct {
	path string
}

// NewFixtureWriter creates a fixture writer for path.
func NewFixtureWriter(path string) *FixtureWriter {
	return &FixtureWriter{path: path}
}

// Upsert merges products into the fixture, replacing entries with the same ID.
func (w *FixtureWriter) Upsert(_ context.Context, products []*contracts.ProductDTO) error {
	existing, err := LoadFixture(w.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	merged := NewMemoryReadModel(existing...)
	merged.Add(products...)
	return WriteFixture(w.path, merged.Snapshot())
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
