package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/light-bringer/storefront-catalog/internal/config"
	logpkg "github.com/light-bringer/storefront-catalog/internal/logger"
)

var (
	driver     = flag.String("driver", "", "Store driver: spanner or postgres (default: database.driver from config)")
	migrateDir = flag.String("migrations", "migrations", "Directory holding one sub-directory of SQL files per driver")
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

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if *driver != "" {
		cfg.Database.Driver = *driver
	}

	if err := run(context.Background(), cfg.Database, logger); err != nil {
		logger.Fatal("Migration failed", zap.Error(err))
	}

	logger.Info("Migrations completed successfully")
}

func run(ctx context.Context, db config.DatabaseConfig, logger *zap.Logger) error {
	files, err := migrationFiles(*migrateDir, db.Driver)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		logger.Info("No migration files found", zap.String("driver", db.Driver))
		return nil
	}

	switch db.Driver {
	case config.DriverSpanner:
		m := &spannerMigrator{cfg: db.Spanner, logger: logger}
		if err := m.ensureInstance(ctx); err != nil {
			return fmt.Errorf("failed to ensure instance: %w", err)
		}
		if err := m.ensureDatabase(ctx); err != nil {
			return fmt.Errorf("failed to ensure database: %w", err)
		}
		return m.apply(ctx, files)

	case config.DriverPostgres:
		return applyPostgres(ctx, db.Postgres.URL, files, logger)

	case config.DriverMemory:
		logger.Info("Memory driver has no schema; nothing to migrate")
		return nil

	default:
		return fmt.Errorf("unsupported database driver %q", db.Driver)
	}
}
