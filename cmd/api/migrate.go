package main

import (
	"fmt"

	"storefront-cms/internal/config"
	"storefront-cms/internal/database"
	"storefront-cms/internal/logger"

	"github.com/spf13/cobra"
)

var migrationsDir string

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	cmd.PersistentFlags().StringVar(&migrationsDir, "dir", "", "migrations directory (defaults to MIGRATIONS_DIR)")

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(func(svc database.Service, dir string) error {
				log, err := logger.New(config.Load().Server.Env)
				if err != nil {
					return fmt.Errorf("failed to initialize logger: %w", err)
				}
				defer log.Sync()

				return database.RunMigrations(svc.DB(), dir, log)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Print the applied state of every migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(func(svc database.Service, dir string) error {
				return database.GetMigrationStatus(svc.DB(), dir)
			})
		},
	})

	return cmd
}

func withDatabase(fn func(svc database.Service, dir string) error) error {
	cfg := config.Load()

	dir := migrationsDir
	if dir == "" {
		dir = cfg.Server.MigrationsDir
	}

	svc, err := database.New(cfg.Database)
	if err != nil {
		return err
	}
	defer svc.Close()

	return fn(svc, dir)
}
