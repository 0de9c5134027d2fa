package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/light-bringer/storefront-catalog/internal/app/catalog/demo"
	"github.com/light-bringer/storefront-catalog/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-catalog/internal/config"
	logpkg "github.com/light-bringer/storefront-catalog/internal/logger"
	"github.com/light-bringer/storefront-catalog/internal/services"
)

var (
	perCategory = flag.Int("per-category", 40, "Number of demo products to generate per category")
	driver      = flag.String("driver", "", "Store driver override: spanner, postgres or memory")
)

func main() {
	flag.Parse()
	_ = godotenv.Load()

	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *driver != "" {
		cfg.Database.Driver = *driver
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(context.Background(), cfg, logger); err != nil {
		logger.Fatal("Seeding failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	if *perCategory <= 0 {
		return fmt.Errorf("per-category must be positive, got %d", *perCategory)
	}

	serviceOpts, err := services.NewServiceOptions(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer serviceOpts.Close()

	for _, category := range domain.Categories() {
		products := demo.Products(category, *perCategory)
		for _, p := range products {
			if err := domain.ValidateProductURL(p.ProductURL); err != nil {
				return fmt.Errorf("product %s: %w", p.ProductID, err)
			}
		}
		if err := serviceOpts.ProductWriter.Upsert(ctx, products); err != nil {
			return fmt.Errorf("failed to seed %s: %w", category, err)
		}
		logger.Info("Seeded category",
			zap.String("category", category.String()),
			zap.Int("products", len(products)),
		)
	}
	return nil
}
