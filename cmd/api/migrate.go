package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/afritrim-api/internal/config"
	dbpkg "github.com/BruksfildServices01/afritrim-api/internal/db"
	"github.com/BruksfildServices01/afritrim-api/internal/logger"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			log := logger.New(cfg)

			db, err := dbpkg.NewDB(cfg)
			if err != nil {
				return err
			}
			sqlDB, err := db.DB()
			if err != nil {
				return fmt.Errorf("get sql.DB: %w", err)
			}
			defer sqlDB.Close()

			if err := dbpkg.Migrate(db); err != nil {
				return err
			}

			log.Info().Msg("migrations applied")
			return nil
		},
	}
}
