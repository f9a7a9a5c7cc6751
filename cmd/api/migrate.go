package main

import (
	"fmt"
	"orbit/cmd/internal/domain/database"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE: func(_ *cobra.Command, _ []string) error {
		db, err := database.Open(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}

		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("failed to migrate: %w", err)
		}

		log.Infof("schema of %s database is up to date", cfg.Database.Driver)
		return nil
	},
}
