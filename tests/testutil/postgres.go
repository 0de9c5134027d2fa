package testutil

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-catalog/internal/app/catalog/contracts"
	"github.com/light-bringer/storefront-catalog/internal/app/catalog/repo"
	"github.com/light-bringer/storefront-catalog/internal/models/m_product"
)

// SetupPostgresTest connects to POSTGRES_TEST_URL, applies the schema and
// empties the products table. The test is skipped when the variable is unset.
func SetupPostgresTest(t *testing.T) (*pgxpool.Pool, func()) {
	t.Helper()

	url := os.Getenv("POSTGRES_TEST_URL")
	if url == "" {
		t.Skip("POSTGRES_TEST_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err, "failed to create postgres pool")

	ddl, err := os.ReadFile(filepath.Join(MigrationsDir(), "postgres", "001_create_products.sql"))
	require.NoError(t, err, "failed to read postgres schema")
	_, err = pool.Exec(ctx, string(ddl))
	require.NoError(t, err, "failed to apply postgres schema")

	CleanPostgres(t, pool)

	cleanup := func() {
		CleanPostgres(t, pool)
		pool.Close()
	}
	return pool, cleanup
}

// CleanPostgres deletes every product.
func CleanPostgres(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	_, err := pool.Exec(context.Background(), "TRUNCATE "+m_product.TableName)
	require.NoError(t, err, "failed to clean postgres")
}

// InsertPostgresProducts writes products through the PostgreSQL product writer.
func InsertPostgresProducts(t *testing.T, pool *pgxpool.Pool, products ...*contracts.ProductDTO) {
	t.Helper()

	err := repo.NewPostgresProductWriter(pool).Upsert(context.Background(), products)
	require.NoError(t, err, "failed to insert test products")
}

// MigrationsDir returns the absolute path of the repository's migrations directory.
func MigrationsDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "migrations")
}
