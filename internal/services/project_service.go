package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/repository"
	"gorm.io/gorm"
)

// ProjectService scopes every project operation to the acting user.
type ProjectService struct {
	projectRepo repository.ProjectRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
	}
}

// CreateProjectInput represents the client-settable fields of a new project.
// The owner is never part of the input.
type CreateProjectInput struct {
	Name        string
	Description string
	Status      string
	DueDate     *time.Time
}

// UpdateProjectInput holds the fields to change; nil means unchanged.
type UpdateProjectInput struct {
	Name         *string
	Description  *string
	Status       *string
	DueDate      *time.Time
	ClearDueDate bool
}

// List returns all projects owned by the actor.
func (s *ProjectService) List(ctx context.Context, actorID uint64) ([]models.Project, error) {
	projects, err := s.projectRepo.ListByUserID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("%w: list projects: %v", ErrPersistence, err)
	}
	return projects, nil
}

// Get returns the project if it exists and is owned by the actor.
func (s *ProjectService) Get(ctx context.Context, actorID, projectID uint64) (*models.Project, error) {
	return findOwnedProject(ctx, s.projectRepo, actorID, projectID)
}

// Create creates a project owned by the actor.
func (s *ProjectService) Create(ctx context.Context, actorID uint64, input CreateProjectInput) (*models.Project, error) {
	if isBlank(input.Name) {
		return nil, ErrNameRequired
	}

	project := &models.Project{
		Name:        input.Name,
		Description: input.Description,
		Status:      input.Status,
		DueDate:     input.DueDate,
		UserID:      actorID,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("%w: create project: %v", ErrPersistence, err)
	}

	return project, nil
}

// Update applies the supplied fields to an owned project.
func (s *ProjectService) Update(ctx context.Context, actorID, projectID uint64, input UpdateProjectInput) (*models.Project, error) {
	project, err := findOwnedProject(ctx, s.projectRepo, actorID, projectID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if isBlank(*input.Name) {
			return nil, ErrNameRequired
		}
		project.Name = *input.Name
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.Status != nil {
		project.Status = *input.Status
	}
	if input.ClearDueDate {
		project.DueDate = nil
	} else if input.DueDate != nil {
		project.DueDate = input.DueDate
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("%w: update project: %v", ErrPersistence, err)
	}

	return findOwnedProject(ctx, s.projectRepo, actorID, project.ID)
}

// Delete removes an owned project together with its tasks.
func (s *ProjectService) Delete(ctx context.Context, actorID, projectID uint64) error {
	if _, err := findOwnedProject(ctx, s.projectRepo, actorID, projectID); err != nil {
		return err
	}

	if err := s.projectRepo.Delete(ctx, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("%w: delete project: %v", ErrPersistence, err)
	}

	return nil
}

// findOwnedProject loads a project and rejects it unless actorID owns it.
// Missing and foreign projects are indistinguishable to the caller.
func findOwnedProject(ctx context.Context, repo repository.ProjectRepository, actorID, projectID uint64) (*models.Project, error) {
	project, err := repo.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("%w: find project: %v", ErrPersistence, err)
	}

	if !project.OwnedBy(actorID) {
		return nil, ErrProjectNotFound
	}

	return project, nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
