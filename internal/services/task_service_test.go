package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/repository"
	"github.com/yukikurage/project-tracker-api/internal/testutil"
	"gorm.io/gorm"
)

type TaskServiceTestSuite struct {
	suite.Suite
	ctx          context.Context
	db           *gorm.DB
	service      *TaskService
	alice        *models.User
	bob          *models.User
	aliceProject *models.Project
	bobProject   *models.Project
}

func (s *TaskServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.db = testutil.NewDB(s.T())
	s.service = NewTaskService(
		repository.NewTaskRepository(s.db),
		repository.NewProjectRepository(s.db),
	)
	s.alice = testutil.CreateUser(s.T(), s.db, "alice@example.com")
	s.bob = testutil.CreateUser(s.T(), s.db, "bob@example.com")
	s.aliceProject = testutil.CreateProject(s.T(), s.db, "Alice Project", s.alice.ID)
	s.bobProject = testutil.CreateProject(s.T(), s.db, "Bob Project", s.bob.ID)
}

func uint64Ptr(v uint64) *uint64 { return &v }
func strPtr(v string) *string    { return &v }
func boolPtr(v bool) *bool       { return &v }

func (s *TaskServiceTestSuite) TestCreate_InOwnProject() {
	task, err := s.service.Create(s.ctx, s.alice.ID, CreateTaskInput{
		Title:     "Design mockups",
		Priority:  "high",
		ProjectID: uint64Ptr(s.aliceProject.ID),
	})
	s.Require().NoError(err)
	s.NotZero(task.ID)
	s.Equal(s.aliceProject.ID, task.ProjectID)
	s.False(task.Completed)
}

func (s *TaskServiceTestSuite) TestCreate_RejectsForeignMissingOrAbsentProject() {
	cases := []*uint64{nil, uint64Ptr(s.bobProject.ID), uint64Ptr(999)}
	for _, projectID := range cases {
		_, err := s.service.Create(s.ctx, s.alice.ID, CreateTaskInput{Title: "x", ProjectID: projectID})
		s.ErrorIs(err, ErrInvalidProject)
	}

	var count int64
	s.db.Model(&models.Task{}).Count(&count)
	s.Zero(count)
}

func (s *TaskServiceTestSuite) TestList_OnlyTasksInOwnedProjects() {
	testutil.CreateTask(s.T(), s.db, "Alice 1", s.aliceProject.ID)
	testutil.CreateTask(s.T(), s.db, "Alice 2", s.aliceProject.ID)
	testutil.CreateTask(s.T(), s.db, "Bob 1", s.bobProject.ID)

	tasks, err := s.service.List(s.ctx, s.alice.ID)
	s.Require().NoError(err)
	s.Len(tasks, 2)
	for _, task := range tasks {
		s.Equal(s.aliceProject.ID, task.ProjectID)
	}

	tasks, err = s.service.List(s.ctx, 999)
	s.Require().NoError(err)
	s.NotNil(tasks)
	s.Empty(tasks)
}

func (s *TaskServiceTestSuite) TestGet_ForeignTaskIsNotFound() {
	task := testutil.CreateTask(s.T(), s.db, "Bob 1", s.bobProject.ID)

	_, err := s.service.Get(s.ctx, s.alice.ID, task.ID)
	s.ErrorIs(err, ErrTaskNotFound)

	_, err = s.service.Get(s.ctx, s.alice.ID, 999)
	s.ErrorIs(err, ErrTaskNotFound)

	got, err := s.service.Get(s.ctx, s.bob.ID, task.ID)
	s.Require().NoError(err)
	s.Equal("Bob 1", got.Title)
}

func (s *TaskServiceTestSuite) TestUpdate_PartialFields() {
	task := testutil.CreateTask(s.T(), s.db, "Alice 1", s.aliceProject.ID)

	updated, err := s.service.Update(s.ctx, s.alice.ID, task.ID, UpdateTaskInput{Completed: boolPtr(true)})
	s.Require().NoError(err)
	s.True(updated.Completed)
	s.Equal("Alice 1", updated.Title)
	s.Equal("medium", updated.Priority)
}

func (s *TaskServiceTestSuite) TestUpdate_MoveBetweenOwnProjects() {
	second := testutil.CreateProject(s.T(), s.db, "Alice Second", s.alice.ID)
	task := testutil.CreateTask(s.T(), s.db, "Alice 1", s.aliceProject.ID)

	updated, err := s.service.Update(s.ctx, s.alice.ID, task.ID, UpdateTaskInput{ProjectID: uint64Ptr(second.ID)})
	s.Require().NoError(err)
	s.Equal(second.ID, updated.ProjectID)
}

func (s *TaskServiceTestSuite) TestUpdate_SameProjectIsAccepted() {
	task := testutil.CreateTask(s.T(), s.db, "Alice 1", s.aliceProject.ID)

	updated, err := s.service.Update(s.ctx, s.alice.ID, task.ID, UpdateTaskInput{
		Title:     strPtr("Renamed"),
		ProjectID: uint64Ptr(s.aliceProject.ID),
	})
	s.Require().NoError(err)
	s.Equal("Renamed", updated.Title)
}

func (s *TaskServiceTestSuite) TestUpdate_MoveIntoForeignProjectChangesNothing() {
	task := testutil.CreateTask(s.T(), s.db, "Alice 1", s.aliceProject.ID)

	_, err := s.service.Update(s.ctx, s.alice.ID, task.ID, UpdateTaskInput{
		Title:     strPtr("Moved"),
		ProjectID: uint64Ptr(s.bobProject.ID),
	})
	s.ErrorIs(err, ErrInvalidProject)

	var stored models.Task
	s.Require().NoError(s.db.First(&stored, task.ID).Error)
	s.Equal("Alice 1", stored.Title)
	s.Equal(s.aliceProject.ID, stored.ProjectID)
}

func (s *TaskServiceTestSuite) TestTitleIsRequiredOnCreateAndUpdate() {
	_, err := s.service.Create(s.ctx, s.alice.ID, CreateTaskInput{Title: "  ", ProjectID: uint64Ptr(s.aliceProject.ID)})
	s.ErrorIs(err, ErrTitleRequired)

	task := testutil.CreateTask(s.T(), s.db, "Alice 1", s.aliceProject.ID)
	_, err = s.service.Update(s.ctx, s.alice.ID, task.ID, UpdateTaskInput{Title: strPtr("")})
	s.ErrorIs(err, ErrTitleRequired)

	var stored models.Task
	s.Require().NoError(s.db.First(&stored, task.ID).Error)
	s.Equal("Alice 1", stored.Title)
}

func (s *TaskServiceTestSuite) TestUpdate_ForeignTaskIsNotFound() {
	task := testutil.CreateTask(s.T(), s.db, "Bob 1", s.bobProject.ID)

	_, err := s.service.Update(s.ctx, s.alice.ID, task.ID, UpdateTaskInput{Title: strPtr("Mine now")})
	s.ErrorIs(err, ErrTaskNotFound)
}

// deletingTaskRepository removes the task's project between the ownership
// check and the write, like a concurrent DELETE /api/projects/:id would.
type deletingTaskRepository struct {
	repository.TaskRepository
	projects repository.ProjectRepository
}

func (r *deletingTaskRepository) Update(ctx context.Context, task *models.Task) error {
	if err := r.projects.Delete(ctx, task.ProjectID); err != nil {
		return err
	}
	return r.TaskRepository.Update(ctx, task)
}

func (s *TaskServiceTestSuite) TestUpdate_ProjectDeletedMidUpdateLeavesNoOrphan() {
	task := testutil.CreateTask(s.T(), s.db, "Alice 1", s.aliceProject.ID)
	projects := repository.NewProjectRepository(s.db)
	service := NewTaskService(
		&deletingTaskRepository{TaskRepository: repository.NewTaskRepository(s.db), projects: projects},
		projects,
	)

	_, err := service.Update(s.ctx, s.alice.ID, task.ID, UpdateTaskInput{Title: strPtr("Renamed")})
	s.ErrorIs(err, ErrTaskNotFound)

	var tasks, remaining int64
	s.Require().NoError(s.db.Model(&models.Task{}).Where("project_id = ?", s.aliceProject.ID).Count(&tasks).Error)
	s.Require().NoError(s.db.Model(&models.Project{}).Where("id = ?", s.aliceProject.ID).Count(&remaining).Error)
	s.Zero(tasks)
	s.Zero(remaining)
}

func (s *TaskServiceTestSuite) TestDelete() {
	task := testutil.CreateTask(s.T(), s.db, "Bob 1", s.bobProject.ID)

	s.ErrorIs(s.service.Delete(s.ctx, s.alice.ID, task.ID), ErrTaskNotFound)
	s.Require().NoError(s.service.Delete(s.ctx, s.bob.ID, task.ID))
	s.ErrorIs(s.service.Delete(s.ctx, s.bob.ID, task.ID), ErrTaskNotFound)
}

func TestTaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}
