package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"job-assignment-service/internal/config"
	"job-assignment-service/internal/logging"
	"job-assignment-service/internal/repository/postgresql"
)

var rootCmd = &cobra.Command{
	Use:           "job-assignment-api",
	Short:         "Job assignment service API",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(runCmd)
}

// bootstrap loads the configuration and installs the global logger.
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, nil, fmt.Errorf("reading configuration: %w", err)
	}

	logger, err := logging.New(cfg.Service.LogLevel)
	if err != nil {
		logger, err = logging.New("info")
		if err != nil {
			return nil, nil, err
		}
	}
	return cfg, logger, nil
}

func openPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	zap.S().Infow("connecting to postgres", "dsn", config.RedactDSN(cfg.DSN))
	return postgresql.NewPool(ctx, postgresql.PoolConfig{
		DSN:             cfg.DSN,
		MaxConns:        cfg.MaxConns,
		MinConns:        cfg.MinConns,
		MaxConnLifetime: cfg.MaxConnLifetime,
		MaxConnIdleTime: cfg.MaxConnIdleTime,
		DialTimeout:     cfg.DialTimeout,
	})
}
