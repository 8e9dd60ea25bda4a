package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/textile_erp/internal/core/domain"
	portssvc "github.com/SscSPs/textile_erp/internal/core/ports/services"
	"github.com/SscSPs/textile_erp/internal/core/services"
	"github.com/SscSPs/textile_erp/internal/repositories/database/pgsql"
	"github.com/SscSPs/textile_erp/pkg/database"
	"github.com/spf13/cobra"
)

var (
	coaSegment string
	coaUser    string
)

var setupCOACmd = &cobra.Command{
	Use:   "setup-coa",
	Short: "Seed the default root accounts into a segment",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		cfg, dbPool, err := connect(ctx)
		if err != nil {
			return err
		}
		defer database.ClosePgxPool(dbPool)

		container := services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(dbPool))
		created, err := container.Account.SetupDefaultCOA(ctx, coaSegment, coaUser)
		if err != nil {
			return fmt.Errorf("setup default chart of accounts: %w", err)
		}

		if len(created) > 0 {
			err := container.Audit.Record(ctx, portssvc.AuditRecord{
				UserID:     coaUser,
				Action:     domain.AuditSeed,
				Module:     "accounts",
				ResourceID: created[0].Segment,
				After:      created,
			})
			if err != nil {
				slog.Error("Failed to write audit log", slog.String("error", err.Error()))
			}
		}

		for _, a := range created {
			fmt.Fprintf(cmd.OutOrStdout(), "created %s %s (%s)\n", a.Code, a.Name, a.Segment)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d account(s) created\n", len(created))
		return nil
	},
}

func init() {
	setupCOACmd.Flags().StringVar(&coaSegment, "segment", "", "segment to seed (defaults to DEFAULT_SEGMENT)")
	setupCOACmd.Flags().StringVar(&coaUser, "user", "system", "user id recorded as creator")
}
