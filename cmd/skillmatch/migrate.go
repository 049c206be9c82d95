package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillmatch/internal/config"
	"github.com/jonathan/skillmatch/internal/db"
)

var migrateConfigFile string

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	Long:  "Create the tables and indexes the server needs. Safe to run repeatedly.",
	RunE:  runMigrate,
}

func init() {
	migrateCmd.Flags().StringVar(&migrateConfigFile, "config", "", "Path to a YAML or JSON config file")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(migrateConfigFile)
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("config error: database_url is required")
	}

	ctx := context.Background()
	store, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Database schema applied")
	return nil
}
