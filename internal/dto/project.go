package dto

import (
	"time"

	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/services"
)

// CreateProjectRequest is the body of POST /api/projects. Any userId in the
// body is ignored.
type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status"`
	DueDate     Date   `json:"dueDate"`
}

// UpdateProjectRequest is the body of PUT /api/projects/:id
type UpdateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	DueDate     Date    `json:"dueDate"`
}

// ToInput converts the request to service input
func (r CreateProjectRequest) ToInput() services.CreateProjectInput {
	return services.CreateProjectInput{
		Name:        r.Name,
		Description: r.Description,
		Status:      r.Status,
		DueDate:     r.DueDate.Ptr(),
	}
}

// ToInput converts the request to service input
func (r UpdateProjectRequest) ToInput() services.UpdateProjectInput {
	return services.UpdateProjectInput{
		Name:         r.Name,
		Description:  r.Description,
		Status:       r.Status,
		DueDate:      r.DueDate.Ptr(),
		ClearDueDate: r.DueDate.Cleared(),
	}
}

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID          uint64     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"dueDate"`
	UserID      uint64     `json:"userId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	return ProjectDTO{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		Status:      project.Status,
		DueDate:     project.DueDate,
		UserID:      project.UserID,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}

// ToProjectDTOs converts a slice, never returning nil
func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	dtos := make([]ProjectDTO, 0, len(projects))
	for _, p := range projects {
		dtos = append(dtos, ToProjectDTO(p))
	}
	return dtos
}
