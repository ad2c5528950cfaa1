package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yukikurage/project-tracker-api/internal/constants"
	"github.com/yukikurage/project-tracker-api/internal/database"
	"github.com/yukikurage/project-tracker-api/internal/seed"
)

var fixturePath string

func init() {
	seedCmd.Flags().StringVar(&fixturePath, "fixture", "", "YAML fixture to load instead of the built-in sample data")
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace all data with sample data",
	Long: `Delete every task, project and user, then insert the sample
fixture. Runs in a single transaction.

Examples:
  # Load the built-in sample data (john@example.com / password123)
  server seed

  # Load a custom fixture
  server seed --fixture ./testdata/fixture.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := loadFixture()
		if err != nil {
			return err
		}

		_, log, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()
		defer closeDB(db, log)

		if err := database.Migrate(db, log); err != nil {
			return err
		}
		return seed.Run(db, f, constants.BcryptCost, log)
	},
}

func loadFixture() (*seed.Fixture, error) {
	if fixturePath == "" {
		return seed.DefaultFixture()
	}
	data, err := os.ReadFile(fixturePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	return seed.ParseFixture(data)
}
