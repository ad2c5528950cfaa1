package dto

import (
	"time"

	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/services"
)

// CreateTaskRequest is the body of POST /api/tasks
type CreateTaskRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Completed   bool    `json:"completed"`
	Priority    string  `json:"priority"`
	DueDate     Date    `json:"dueDate"`
	ProjectID   *uint64 `json:"projectId"`
}

// UpdateTaskRequest is the body of PUT /api/tasks/:id. A null projectId
// leaves the project unchanged.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
	Priority    *string `json:"priority"`
	DueDate     Date    `json:"dueDate"`
	ProjectID   *uint64 `json:"projectId"`
}

// ToInput converts the request to service input
func (r CreateTaskRequest) ToInput() services.CreateTaskInput {
	return services.CreateTaskInput{
		Title:       r.Title,
		Description: r.Description,
		Completed:   r.Completed,
		Priority:    r.Priority,
		DueDate:     r.DueDate.Ptr(),
		ProjectID:   r.ProjectID,
	}
}

// ToInput converts the request to service input
func (r UpdateTaskRequest) ToInput() services.UpdateTaskInput {
	return services.UpdateTaskInput{
		Title:        r.Title,
		Description:  r.Description,
		Completed:    r.Completed,
		Priority:     r.Priority,
		DueDate:      r.DueDate.Ptr(),
		ClearDueDate: r.DueDate.Cleared(),
		ProjectID:    r.ProjectID,
	}
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	ProjectID   uint64     `json:"projectId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
		Priority:    task.Priority,
		DueDate:     task.DueDate,
		ProjectID:   task.ProjectID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// ToTaskDTOs converts a slice, never returning nil
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, 0, len(tasks))
	for _, t := range tasks {
		dtos = append(dtos, ToTaskDTO(t))
	}
	return dtos
}

// SuggestTasksRequest is the body of POST /api/projects/:id/suggestions
type SuggestTasksRequest struct {
	Text string `json:"text"`
}

// TaskDraftDTO is an unpersisted task suggestion
type TaskDraftDTO struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
}

// SuggestTasksResponse wraps the drafts returned for a project
type SuggestTasksResponse struct {
	Suggestions []TaskDraftDTO `json:"suggestions"`
}

// ToSuggestTasksResponse converts service drafts to the response body
func ToSuggestTasksResponse(drafts []services.TaskDraft) SuggestTasksResponse {
	resp := SuggestTasksResponse{Suggestions: make([]TaskDraftDTO, 0, len(drafts))}
	for _, d := range drafts {
		resp.Suggestions = append(resp.Suggestions, TaskDraftDTO{
			Title:       d.Title,
			Description: d.Description,
			Priority:    d.Priority,
			DueDate:     d.DueDate,
		})
	}
	return resp
}
