package main

import (
	"context"
	"database/sql"
	"fmt"

	root "reflectometry"
	"reflectometry/internal/config"
	"reflectometry/pkg/logger"

	"github.com/pressly/goose/v3"
	"github.com/riverqueue/river/riverdriver/riverdatabasesql"
	"github.com/riverqueue/river/rivermigrate"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateFits applies the goose migrations of the fits table.
func migrateFits(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(root.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("could not set goose dialect to postgres: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("could not migrate fits table: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("could not read fits schema version: %w", err)
	}
	logger.Info(ctx, "fits schema migrated", zap.Int64("version", version))

	return nil
}

// migrateQueue brings river's tables to the latest version it ships.
func migrateQueue(ctx context.Context, db *sql.DB) error {
	migrator, err := rivermigrate.New(riverdatabasesql.New(db), nil)
	if err != nil {
		return fmt.Errorf("could not create river queue migrator: %w", err)
	}
	all := migrator.AllVersions()
	latest := all[len(all)-1].Version

	current := 0
	existing, err := migrator.ExistingVersions(ctx)
	if err != nil {
		return fmt.Errorf("could not get existing river queue migrations: %w", err)
	}
	if len(existing) > 0 {
		current = existing[len(existing)-1].Version
	}

	if latest > current {
		if _, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, &rivermigrate.MigrateOpts{
			TargetVersion: latest,
		}); err != nil {
			return fmt.Errorf("could not migrate river queue database: %w", err)
		}
	}
	logger.Info(ctx, "river queue migrated", zap.Int("from", current), zap.Int("to", latest))

	return nil
}

// migrateCommand constructs the 'migrate' subcommand that brings the fits
// table and the river queue tables to their latest versions.
func migrateCommand(cfg *config.Config) *cobra.Command {
	var queueOnly bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrates the fits and river queue tables to the latest version",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			db, ok := strg.DB.(*sql.DB)
			if !ok {
				logger.Fatal(ctx, "postgres storage is not backed by *sql.DB")
			}

			if !queueOnly {
				if err := migrateFits(ctx, db); err != nil {
					logger.Fatal(ctx, "could not migrate database", zap.Error(err))
				}
			}
			if err := migrateQueue(ctx, db); err != nil {
				logger.Fatal(ctx, "could not migrate database", zap.Error(err))
			}
		},
	}

	cmd.Flags().BoolVar(&queueOnly, "queue-only", false, "Only migrate the river queue tables")

	return cmd
}
