package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/light-bringer/storefront-catalog/internal/app/catalog/contracts"
	"github.com/light-bringer/storefront-catalog/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-catalog/internal/app/catalog/queries/get_facets"
	"github.com/light-bringer/storefront-catalog/internal/app/catalog/queries/get_product"
	"github.com/light-bringer/storefront-catalog/internal/app/catalog/queries/list_featured"
	"github.com/light-bringer/storefront-catalog/internal/app/catalog/queries/list_products"
	"github.com/light-bringer/storefront-catalog/internal/app/catalog/repo"
	"github.com/light-bringer/storefront-catalog/internal/config"
	httphandler "github.com/light-bringer/storefront-catalog/internal/transport/http"
)

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	SpannerClient  *spanner.Client
	PostgresPool   *pgxpool.Pool
	ReadModel      contracts.ReadModel
	ProductWriter  repo.ProductWriter
	CatalogHandler *httphandler.CatalogHandler
}

// NewServiceOptions opens the configured store and wires up all application
// dependencies.
func NewServiceOptions(ctx context.Context, cfg config.Config, logger *zap.Logger) (*ServiceOptions, error) {
	// 1. Open the store
	s := &ServiceOptions{}
	base, err := s.openStore(ctx, cfg.Database, logger)
	if err != nil {
		s.Close()
		return nil, err
	}

	// 2. Instrument reads
	s.ReadModel = repo.NewInstrumentedReadModel(base, cfg.Database.Driver, cfg.Catalog.QueryTimeout())

	// 3. Check the store answers before taking traffic
	if err := s.ping(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		s.Close()
		return nil, err
	}

	// 4. Create query use cases
	limits := domain.Limits{
		DefaultLimit:    cfg.Catalog.DefaultLimit,
		MaxLimit:        cfg.Catalog.MaxLimit,
		MaxFilterValues: cfg.Catalog.MaxFilterValues,
	}
	listProductsQuery := list_products.NewQuery(s.ReadModel)
	getFacetsQuery := get_facets.NewQuery(s.ReadModel)
	getProductQuery := get_product.NewQuery(s.ReadModel)
	listFeaturedQuery := list_featured.NewQuery(s.ReadModel, list_featured.Options{
		MinDiscount:  cfg.Catalog.FeaturedMinDiscount,
		DefaultLimit: cfg.Catalog.FeaturedLimit,
		MaxLimit:     cfg.Catalog.MaxLimit,
	})

	// 5. Create HTTP handler
	s.CatalogHandler = httphandler.NewCatalogHandler(
		listProductsQuery,
		getFacetsQuery,
		getProductQuery,
		listFeaturedQuery,
		s.ReadModel,
		limits,
	)

	return s, nil
}

func (s *ServiceOptions) openStore(ctx context.Context, db config.DatabaseConfig, logger *zap.Logger) (contracts.ReadModel, error) {
	switch db.Driver {
	case config.DriverSpanner:
		client, err := spanner.NewClient(ctx, db.Spanner.DatabasePath())
		if err != nil {
			return nil, fmt.Errorf("failed to create Spanner client: %w", err)
		}
		s.SpannerClient = client
		s.ProductWriter = repo.NewSpannerProductWriter(client)
		logger.Info("Using Spanner store", zap.String("database", db.Spanner.DatabasePath()))
		return repo.NewSpannerReadModel(client), nil

	case config.DriverPostgres:
		poolCfg, err := pgxpool.ParseConfig(db.Postgres.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse postgres url: %w", err)
		}
		if db.Postgres.MaxConns > 0 {
			poolCfg.MaxConns = db.Postgres.MaxConns
		}
		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create postgres pool: %w", err)
		}
		s.PostgresPool = pool
		s.ProductWriter = repo.NewPostgresProductWriter(pool)
		logger.Info("Using PostgreSQL store",
			zap.String("host", poolCfg.ConnConfig.Host),
			zap.String("database", poolCfg.ConnConfig.Database),
		)
		return repo.NewPostgresReadModel(pool), nil

	case config.DriverMemory:
		products, err := loadFixture(db.Memory.FixturePath, logger)
		if err != nil {
			return nil, err
		}
		s.ProductWriter = repo.NewFixtureWriter(db.Memory.FixturePath)
		logger.Info("Using in-memory store",
			zap.String("fixture", db.Memory.FixturePath),
			zap.Int("products", len(products)),
		)
		return repo.NewMemoryReadModel(products...), nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", db.Driver)
	}
}

// loadFixture reads the memory store fixture. A missing file starts the
// store empty.
func loadFixture(path string, logger *zap.Logger) ([]*contracts.ProductDTO, error) {
	if path == "" {
		return nil, nil
	}
	products, err := repo.LoadFixture(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warn("Fixture not found, starting with an empty catalog", zap.String("fixture", path))
		return nil, nil
	}
	return products, err
}

func (s *ServiceOptions) ping(ctx context.Context, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := s.ReadModel.Ping(ctx); err != nil {
		return fmt.Errorf("store not ready: %w", err)
	}
	return nil
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
	if s.PostgresPool != nil {
		s.PostgresPool.Close()
	}
}
