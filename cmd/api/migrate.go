package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"job-assignment-service/internal/repository/postgresql"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := bootstrap()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		pool, err := openPool(context.Background(), cfg.Database)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := postgresql.Migrate(pool); err != nil {
			zap.S().Errorw("migration failed", "error", err)
			return err
		}
		zap.S().Info("database migrated")
		return nil
	},
}
