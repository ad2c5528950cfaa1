package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/repository"
	"github.com/yukikurage/project-tracker-api/internal/testutil"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestProjectRepository_ListByUserID_OnlyOwnProjects(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "alice@example.com")
	bob := testutil.CreateUser(t, db, "bob@example.com")
	testutil.CreateProject(t, db, "Alice One", alice.ID)
	testutil.CreateProject(t, db, "Alice Two", alice.ID)
	testutil.CreateProject(t, db, "Bob One", bob.ID)

	repo := repository.NewProjectRepository(db)

	projects, err := repo.ListByUserID(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "Alice One", projects[0].Name)
	assert.Equal(t, "Alice Two", projects[1].Name)

	empty, err := repo.ListByUserID(ctx, 9999)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestProjectRepository_Delete_CascadesTasks(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()

	user := testutil.CreateUser(t, db, "owner@example.com")
	project := testutil.CreateProject(t, db, "Doomed", user.ID)
	other := testutil.CreateProject(t, db, "Survivor", user.ID)
	testutil.CreateTask(t, db, "goes away", project.ID)
	kept := testutil.CreateTask(t, db, "stays", other.ID)

	repo := repository.NewProjectRepository(db)
	require.NoError(t, repo.Delete(ctx, project.ID))

	var count int64
	require.NoError(t, db.Model(&models.Task{}).Where("project_id = ?", project.ID).Count(&count).Error)
	assert.Zero(t, count)

	_, err := repository.NewTaskRepository(db).FindByID(ctx, kept.ID)
	assert.NoError(t, err)

	err = repo.Delete(ctx, project.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestTaskRepository_ListByOwner_JoinsThroughProjects(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "alice@example.com")
	bob := testutil.CreateUser(t, db, "bob@example.com")
	aliceProject := testutil.CreateProject(t, db, "Alice Project", alice.ID)
	bobProject := testutil.CreateProject(t, db, "Bob Project", bob.ID)
	testutil.CreateTask(t, db, "alice task", aliceProject.ID)
	testutil.CreateTask(t, db, "bob task", bobProject.ID)

	tasks, err := repository.NewTaskRepository(db).ListByOwner(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "alice task", tasks[0].Title)
	assert.Equal(t, aliceProject.ID, tasks[0].ProjectID)
}

func TestTaskRepository_Delete_Missing(t *testing.T) {
	db := testutil.NewDB(t)

	err := repository.NewTaskRepository(db).Delete(context.Background(), 42)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestTaskRepository_Update_DeletedRowIsNotReinserted(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()

	user := testutil.CreateUser(t, db, "owner@example.com")
	project := testutil.CreateProject(t, db, "Project", user.ID)
	task := testutil.CreateTask(t, db, "gone", project.ID)

	repo := repository.NewTaskRepository(db)
	require.NoError(t, repo.Delete(ctx, task.ID))

	task.Title = "back again"
	err := repo.Update(ctx, task)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var count int64
	require.NoError(t, db.Model(&models.Task{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestProjectRepository_Update(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()

	user := testutil.CreateUser(t, db, "owner@example.com")
	project := testutil.CreateProject(t, db, "Before", user.ID)
	repo := repository.NewProjectRepository(db)

	project.Name = "After"
	project.DueDate = nil
	require.NoError(t, repo.Update(ctx, project))

	stored, err := repo.FindByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", stored.Name)
	assert.Equal(t, user.ID, stored.UserID)

	require.NoError(t, repo.Delete(ctx, project.ID))
	assert.ErrorIs(t, repo.Update(ctx, project), gorm.ErrRecordNotFound)

	var count int64
	require.NoError(t, db.Model(&models.Project{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUserRepository_DuplicateEmailIsTranslated(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := repository.NewUserRepository(db)

	require.NoError(t, repo.Create(ctx, &models.User{Username: "a", Email: "dup@example.com", PasswordHash: "x"}))
	err := repo.Create(ctx, &models.User{Username: "b", Email: "dup@example.com", PasswordHash: "y"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	user, err := repo.FindByEmail(ctx, "dup@example.com")
	require.NoError(t, err)
	assert.Equal(t, "a", user.Username)
}

func TestProjectRepository_PropagatesStoreErrors(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	storeErr := errors.New("connection refused")
	mock.ExpectQuery("SELECT (.+) FROM `projects`").WillReturnError(storeErr)

	_, err = repository.NewProjectRepository(db).ListByUserID(context.Background(), 1)
	assert.ErrorIs(t, err, storeErr)
	require.NoError(t, mock.ExpectationsWereMet())
}
