package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	database "cloud.google.com/go/spanner/admin/database/apiv1"
	"cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	instance "cloud.google.com/go/spanner/admin/instance/apiv1"
	"cloud.google.com/go/spanner/admin/instance/apiv1/instancepb"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/storefront-catalog/internal/config"
)

type spannerMigrator struct {
	cfg    config.SpannerConfig
	logger *zap.Logger
}

func (m *spannerMigrator) emulator() bool {
	return os.Getenv("SPANNER_EMULATOR_HOST") != ""
}

func (m *spannerMigrator) ensureInstance(ctx context.Context) error {
	m.logger.Info("Ensuring instance exists", zap.String("instance", m.cfg.Instance))

	instanceAdmin, err := instance.NewInstanceAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create instance admin client: %w", err)
	}
	defer instanceAdmin.Close()

	instanceName := fmt.Sprintf("projects/%s/instances/%s", m.cfg.Project, m.cfg.Instance)

	_, err = instanceAdmin.GetInstance(ctx, &instancepb.GetInstanceRequest{Name: instanceName})
	if err == nil {
		return nil
	}
	if status.Code(err) != codes.NotFound {
		m.logger.Warn("Unexpected error checking instance", zap.Error(err))
		return nil
	}
	if !m.emulator() {
		return fmt.Errorf("instance %s does not exist", instanceName)
	}

	m.logger.Info("Creating emulator instance")
	op, err := instanceAdmin.CreateInstance(ctx, &instancepb.CreateInstanceRequest{
		Parent:     fmt.Sprintf("projects/%s", m.cfg.Project),
		InstanceId: m.cfg.Instance,
		Instance: &instancepb.Instance{
			Config:      fmt.Sprintf("projects/%s/instanceConfigs/emulator-config", m.cfg.Project),
			DisplayName: "Development Instance",
			NodeCount:   1,
		},
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil
		}
		return fmt.Errorf("failed to create instance: %w", err)
	}

	// The emulator may complete immediately.
	if _, err := op.Wait(ctx); err != nil && status.Code(err) != codes.AlreadyExists {
		m.logger.Warn("Instance creation did not complete cleanly", zap.Error(err))
	}
	return nil
}

func (m *spannerMigrator) ensureDatabase(ctx context.Context) error {
	m.logger.Info("Ensuring database exists", zap.String("database", m.cfg.Database))

	adminClient, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer adminClient.Close()

	_, err = adminClient.GetDatabase(ctx, &databasepb.GetDatabaseRequest{Name: m.cfg.DatabasePath()})
	if err == nil {
		return nil
	}

	if status.Code(err) == codes.NotFound {
		m.logger.Info("Creating database")
		op, err := adminClient.CreateDatabase(ctx, &databasepb.CreateDatabaseRequest{
			Parent:          fmt.Sprintf("projects/%s/instances/%s", m.cfg.Project, m.cfg.Instance),
			CreateStatement: fmt.Sprintf("CREATE DATABASE `%s`", m.cfg.Database),
		})
		if err != nil {
			if status.Code(err) == codes.AlreadyExists {
				return nil
			}
			return fmt.Errorf("failed to create database: %w", err)
		}
		if _, err := op.Wait(ctx); err != nil {
			return fmt.Errorf("failed to wait for database creation: %w", err)
		}
		return nil
	}

	if m.emulator() {
		m.logger.Warn("Proceeding with database (emulator mode)", zap.Error(err))
		return nil
	}
	return fmt.Errorf("failed to check database: %w", err)
}

func (m *spannerMigrator) apply(ctx context.Context, files []string) error {
	adminClient, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer adminClient.Close()

	for _, file := range files {
		name := filepath.Base(file)

		content, err := os.ReadFile(filepath.Clean(file))
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}

		op, err := adminClient.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
			Database:   m.cfg.DatabasePath(),
			Statements: splitDDLStatements(string(content)),
		})
		if err != nil {
			return fmt.Errorf("failed to start DDL update for %s: %w", name, err)
		}
		if err := op.Wait(ctx); err != nil {
			return fmt.Errorf("failed to apply DDL for %s: %w", name, err)
		}

		m.logger.Info("Applied migration", zap.String("file", name))
	}
	return nil
}
