package database

import (
	"fmt"

	"github.com/yukikurage/project-tracker-api/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Models lists every table managed by the application, parents first
var Models = []any{
	&models.User{},
	&models.Project{},
	&models.Task{},
}

// Migrate creates or updates the schema and makes sure the ownership
// lookup indexes exist
func Migrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("Running database migrations...")
	if err := db.AutoMigrate(Models...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := AddIndexes(db, log); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}

	log.Info("Database migrations completed")
	return nil
}

// AddIndexes adds the indexes used by ownership-scoped queries
func AddIndexes(db *gorm.DB, log *zap.Logger) error {
	indexes := []struct {
		model any
		field string
		name  string
	}{
		{&models.Project{}, "UserID", "idx_projects_user_id"},
		{&models.Task{}, "ProjectID", "idx_tasks_project_id"},
		{&models.User{}, "Email", "idx_users_email"},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.model, idx.name) || migrator.HasIndex(idx.model, idx.field) {
			log.Debug("Index already exists, skipping", zap.String("index", idx.name))
			continue
		}

		if err := migrator.CreateIndex(idx.model, idx.field); err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Info("Created index", zap.String("index", idx.name))
	}

	return nil
}
