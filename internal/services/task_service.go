package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/repository"
	"gorm.io/gorm"
)

// TaskService resolves task ownership through the parent project.
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	Completed   bool
	Priority    string
	DueDate     *time.Time
	ProjectID   *uint64
}

// UpdateTaskInput represents input for updating a task
type UpdateTaskInput struct {
	Title        *string
	Description  *string
	Completed    *bool
	Priority     *string
	DueDate      *time.Time
	ClearDueDate bool
	ProjectID    *uint64
}

// List returns every task in a project owned by the actor
func (s *TaskService) List(ctx context.Context, actorID uint64) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListByOwner(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("%w: list tasks: %v", ErrPersistence, err)
	}
	return tasks, nil
}

// Get returns a task whose project is owned by the actor
func (s *TaskService) Get(ctx context.Context, actorID, taskID uint64) (*models.Task, error) {
	return s.findOwnedTask(ctx, actorID, taskID)
}

// Create creates a task under a project owned by the actor
func (s *TaskService) Create(ctx context.Context, actorID uint64, input CreateTaskInput) (*models.Task, error) {
	if isBlank(input.Title) {
		return nil, ErrTitleRequired
	}
	if input.ProjectID == nil {
		return nil, ErrInvalidProject
	}
	if err := s.ensureTargetProject(ctx, actorID, *input.ProjectID); err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Completed:   input.Completed,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
		ProjectID:   *input.ProjectID,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("%w: create task: %v", ErrPersistence, err)
	}

	return task, nil
}

// Update updates an owned task. Moving it to another project requires the
// actor to own the destination as well.
func (s *TaskService) Update(ctx context.Context, actorID, taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.findOwnedTask(ctx, actorID, taskID)
	if err != nil {
		return nil, err
	}

	if input.ProjectID != nil && *input.ProjectID != task.ProjectID {
		if err := s.ensureTargetProject(ctx, actorID, *input.ProjectID); err != nil {
			return nil, err
		}
		task.ProjectID = *input.ProjectID
	}

	if input.Title != nil {
		if isBlank(*input.Title) {
			return nil, ErrTitleRequired
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Completed != nil {
		task.Completed = *input.Completed
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("%w: update task: %v", ErrPersistence, err)
	}

	return s.findOwnedTask(ctx, actorID, task.ID)
}

// Delete deletes an owned task
func (s *TaskService) Delete(ctx context.Context, actorID, taskID uint64) error {
	if _, err := s.findOwnedTask(ctx, actorID, taskID); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("%w: delete task: %v", ErrPersistence, err)
	}

	return nil
}

// findOwnedTask loads the task, then its project by foreign key, then
// compares the owner
func (s *TaskService) findOwnedTask(ctx context.Context, actorID, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("%w: find task: %v", ErrPersistence, err)
	}

	if _, err := findOwnedProject(ctx, s.projectRepo, actorID, task.ProjectID); err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	return task, nil
}

// ensureTargetProject verifies that a task may be placed in projectID
func (s *TaskService) ensureTargetProject(ctx context.Context, actorID, projectID uint64) error {
	if _, err := findOwnedProject(ctx, s.projectRepo, actorID, projectID); err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			return ErrInvalidProject
		}
		return err
	}
	return nil
}
