package main

import (
	"fmt"
	"orbit/cmd/internal/config"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "orbit",
	Short: "Orbit dashboard API",
	Long: `Orbit serves the personal dashboard API: tasks, notes, expenses,
events, preferences, daily check-ins and the third-party widgets.

Running "orbit" without a subcommand starts the server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		var err error
		cfg, err = config.Load(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		log.SetLevel(cfg.GommonLevel())
		return nil
	},
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}
