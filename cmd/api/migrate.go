package main

import (
	"github.com/spf13/cobra"

	"motoride/internal/infrastructure/database"
	"motoride/pkg/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the api key and motor spec tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.DBDriver == driverFirestore {
			logger.Info("Firestore needs no schema")
			return nil
		}

		db, err := database.Open(cmd.Context(), cfg.DBDriver, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := database.Migrate(cmd.Context(), db); err != nil {
			return err
		}
		logger.Info("Schema applied to %s database", cfg.DBDriver)
		return nil
	},
}
