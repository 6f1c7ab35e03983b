package main

import (
	"campusedge_payments/internal/adapter/persistence/repository"
	"campusedge_payments/internal/infrastructure/config"
	"campusedge_payments/internal/infrastructure/database"
	"campusedge_payments/internal/infrastructure/logging"
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "paymentsctl",
		Short:         "Operational tasks for the CampusEdge payments service",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newMigrateCmd())
	return root
}

func newMigrateCmd() *cobra.Command {
	var store string
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the payments table in the configured primary store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			if store != "" {
				cfg.StoreBackend = config.StoreBackend(store)
			}
			return migrate(cmd, cfg, logging.New(cfg.LogLevel))
		},
	}
	cmd.Flags().StringVar(&store, "store", "", "override PAYMENT_STORE (postgres|dynamodb)")
	return cmd
}

func migrate(cmd *cobra.Command, cfg config.Config, log *logrus.Logger) error {
	switch cfg.StoreBackend {
	case config.StoreBackendPostgres:
		db, err := database.ConnectPostgres(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		if err := repository.MigratePayments(db, cfg.PaymentsTable); err != nil {
			return fmt.Errorf("migrate postgres: %w", err)
		}
	case config.StoreBackendDynamoDB:
		ddb, err := database.ConnectDynamoDB(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		if err := repository.CreatePaymentsTable(cmd.Context(), ddb, cfg.PaymentsTable); err != nil {
			return fmt.Errorf("create dynamodb table: %w", err)
		}
	default:
		log.Infof("[paymentsctl] store=%s needs no migration", cfg.StoreBackend)
		return nil
	}
	log.Infof("[paymentsctl] migrated store=%s table=%s", cfg.StoreBackend, cfg.PaymentsTable)
	return nil
}
