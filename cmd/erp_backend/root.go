package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/SscSPs/textile_erp/internal/platform/config"
	"github.com/SscSPs/textile_erp/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

var debug bool

// rootCmd is the erp_backend command; subcommands do the work.
var rootCmd = &cobra.Command{
	Use:           "erp_backend",
	Short:         "Textile ERP accounting backend",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if debug {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(setupCOACmd)
}

// connect loads the configuration and opens the connection pool.
func connect(ctx context.Context) (*config.Config, *pgxpool.Pool, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, database.PoolOptions{MaxConns: cfg.DBMaxConns})
	if err != nil {
		return nil, nil, fmt.Errorf("initialize database pool: %w", err)
	}
	return cfg, dbPool, nil
}
