package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/repository"
	"github.com/yukikurage/project-tracker-api/internal/testutil"
	"gorm.io/gorm"
)

type ProjectServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	db      *gorm.DB
	service *ProjectService
	alice   *models.User
	bob     *models.User
}

func (s *ProjectServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.db = testutil.NewDB(s.T())
	s.service = NewProjectService(repository.NewProjectRepository(s.db))
	s.alice = testutil.CreateUser(s.T(), s.db, "alice@example.com")
	s.bob = testutil.CreateUser(s.T(), s.db, "bob@example.com")
}

func (s *ProjectServiceTestSuite) TestCreate_AssignsActorAsOwner() {
	due := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	project, err := s.service.Create(s.ctx, s.alice.ID, CreateProjectInput{
		Name:        "Website Redesign",
		Description: "Redesign the company website",
		Status:      "active",
		DueDate:     &due,
	})
	s.Require().NoError(err)
	s.NotZero(project.ID)
	s.Equal(s.alice.ID, project.UserID)
	s.Equal("active", project.Status)
	s.Require().NotNil(project.DueDate)
	s.True(due.Equal(*project.DueDate))
}

func (s *ProjectServiceTestSuite) TestList_OnlyOwnProjects() {
	testutil.CreateProject(s.T(), s.db, "Alice 1", s.alice.ID)
	testutil.CreateProject(s.T(), s.db, "Alice 2", s.alice.ID)
	testutil.CreateProject(s.T(), s.db, "Bob 1", s.bob.ID)

	projects, err := s.service.List(s.ctx, s.alice.ID)
	s.Require().NoError(err)
	s.Len(projects, 2)
	for _, p := range projects {
		s.Equal(s.alice.ID, p.UserID)
	}
}

func (s *ProjectServiceTestSuite) TestList_Empty() {
	projects, err := s.service.List(s.ctx, s.bob.ID)
	s.Require().NoError(err)
	s.NotNil(projects)
	s.Empty(projects)
}

func (s *ProjectServiceTestSuite) TestGet_ForeignAndMissingLookTheSame() {
	project := testutil.CreateProject(s.T(), s.db, "Alice 1", s.alice.ID)

	got, err := s.service.Get(s.ctx, s.alice.ID, project.ID)
	s.Require().NoError(err)
	s.Equal(project.Name, got.Name)

	_, err = s.service.Get(s.ctx, s.bob.ID, project.ID)
	s.ErrorIs(err, ErrProjectNotFound)

	_, err = s.service.Get(s.ctx, s.alice.ID, 999)
	s.ErrorIs(err, ErrProjectNotFound)
}

func (s *ProjectServiceTestSuite) TestUpdate_PartialFields() {
	project := testutil.CreateProject(s.T(), s.db, "Alice 1", s.alice.ID)
	status := "completed"

	updated, err := s.service.Update(s.ctx, s.alice.ID, project.ID, UpdateProjectInput{Status: &status})
	s.Require().NoError(err)
	s.Equal("completed", updated.Status)
	s.Equal("Alice 1", updated.Name)
	s.Equal("Test Description", updated.Description)
	s.Equal(s.alice.ID, updated.UserID)
}

func (s *ProjectServiceTestSuite) TestUpdate_ClearDueDate() {
	project := testutil.CreateProject(s.T(), s.db, "Alice 1", s.alice.ID)
	due := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	updated, err := s.service.Update(s.ctx, s.alice.ID, project.ID, UpdateProjectInput{DueDate: &due})
	s.Require().NoError(err)
	s.Require().NotNil(updated.DueDate)

	updated, err = s.service.Update(s.ctx, s.alice.ID, project.ID, UpdateProjectInput{ClearDueDate: true})
	s.Require().NoError(err)
	s.Nil(updated.DueDate)
}

func (s *ProjectServiceTestSuite) TestNameIsRequiredOnCreateAndUpdate() {
	_, err := s.service.Create(s.ctx, s.alice.ID, CreateProjectInput{Name: " "})
	s.ErrorIs(err, ErrNameRequired)

	project := testutil.CreateProject(s.T(), s.db, "Alice 1", s.alice.ID)
	blank := ""
	_, err = s.service.Update(s.ctx, s.alice.ID, project.ID, UpdateProjectInput{Name: &blank})
	s.ErrorIs(err, ErrNameRequired)

	var stored models.Project
	s.Require().NoError(s.db.First(&stored, project.ID).Error)
	s.Equal("Alice 1", stored.Name)
}

func (s *ProjectServiceTestSuite) TestUpdate_NotOwnerLeavesProjectUntouched() {
	project := testutil.CreateProject(s.T(), s.db, "Alice 1", s.alice.ID)
	name := "Hijacked"

	_, err := s.service.Update(s.ctx, s.bob.ID, project.ID, UpdateProjectInput{Name: &name})
	s.ErrorIs(err, ErrProjectNotFound)

	var stored models.Project
	s.Require().NoError(s.db.First(&stored, project.ID).Error)
	s.Equal("Alice 1", stored.Name)
}

type deletingProjectRepository struct {
	repository.ProjectRepository
}

func (r *deletingProjectRepository) Update(ctx context.Context, project *models.Project) error {
	if err := r.ProjectRepository.Delete(ctx, project.ID); err != nil {
		return err
	}
	return r.ProjectRepository.Update(ctx, project)
}

func (s *ProjectServiceTestSuite) TestUpdate_DeletedMidUpdateIsNotRecreated() {
	project := testutil.CreateProject(s.T(), s.db, "Alice 1", s.alice.ID)
	service := NewProjectService(&deletingProjectRepository{repository.NewProjectRepository(s.db)})
	name := "Renamed"

	_, err := service.Update(s.ctx, s.alice.ID, project.ID, UpdateProjectInput{Name: &name})
	s.ErrorIs(err, ErrProjectNotFound)

	var count int64
	s.Require().NoError(s.db.Model(&models.Project{}).Where("id = ?", project.ID).Count(&count).Error)
	s.Zero(count)
}

func (s *ProjectServiceTestSuite) TestDelete_CascadesToTasks() {
	project := testutil.CreateProject(s.T(), s.db, "Alice 1", s.alice.ID)
	testutil.CreateTask(s.T(), s.db, "Task 1", project.ID)
	testutil.CreateTask(s.T(), s.db, "Task 2", project.ID)

	s.Require().NoError(s.service.Delete(s.ctx, s.alice.ID, project.ID))

	var count int64
	s.db.Model(&models.Task{}).Where("project_id = ?", project.ID).Count(&count)
	s.Zero(count)

	_, err := s.service.Get(s.ctx, s.alice.ID, project.ID)
	s.ErrorIs(err, ErrProjectNotFound)
}

func (s *ProjectServiceTestSuite) TestDelete_NotOwner() {
	project := testutil.CreateProject(s.T(), s.db, "Alice 1", s.alice.ID)

	err := s.service.Delete(s.ctx, s.bob.ID, project.ID)
	s.ErrorIs(err, ErrProjectNotFound)

	var count int64
	s.db.Model(&models.Project{}).Where("id = ?", project.ID).Count(&count)
	s.Equal(int64(1), count)
}

func TestProjectServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectServiceTestSuite))
}

func TestProjectService_PersistenceErrorIsWrapped(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewProjectService(repository.NewProjectRepository(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = svc.List(context.Background(), 1)
	assert.ErrorIs(t, err, ErrPersistence)
}
