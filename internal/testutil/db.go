// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/project-tracker-api/internal/database"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB returns a migrated in-memory SQLite database that is closed when
// the test ends. The pool is pinned to one connection because every new
// connection to ":memory:" would see an empty database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, database.Migrate(db, zap.NewNop()))

	return db
}

// CreateUser inserts a user with a placeholder hash
func CreateUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     email,
		Email:        email,
		PasswordHash: "hashedpassword",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateProject inserts a project owned by userID
func CreateProject(t *testing.T, db *gorm.DB, name string, userID uint64) *models.Project {
	t.Helper()

	project := &models.Project{
		Name:        name,
		Description: "Test Description",
		Status:      "planning",
		UserID:      userID,
	}
	require.NoError(t, db.Create(project).Error)
	return project
}

// CreateTask inserts a task under projectID
func CreateTask(t *testing.T, db *gorm.DB, title string, projectID uint64) *models.Task {
	t.Helper()

	task := &models.Task{
		Title:       title,
		Description: "Test Description",
		Priority:    "medium",
		ProjectID:   projectID,
	}
	require.NoError(t, db.Create(task).Error)
	return task
}
