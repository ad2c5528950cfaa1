package main

import (
	"github.com/spf13/cobra"
	"github.com/yukikurage/project-tracker-api/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Long: `Run AutoMigrate for users, projects and tasks and create the
lookup indexes. Safe to run repeatedly.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, log, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()
		defer closeDB(db, log)

		if err := database.Migrate(db, log); err != nil {
			return err
		}
		log.Info("migrations complete")
		return nil
	},
}
