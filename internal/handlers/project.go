package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/project-tracker-api/internal/errors"
	"github.com/yukikurage/project-tracker-api/internal/services"
	"go.uber.org/zap"
)

type ProjectHandler struct {
	projectService *services.ProjectService
	log            *zap.Logger
}

func NewProjectHandler(projectService *services.ProjectService, log *zap.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		log:            log,
	}
}

// ListProjects returns the projects owned by the current user
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}

	projects, err := h.projectService.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch projects")
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTOs(projects))
}

// GetProject returns a project owned by the current user
func (h *ProjectHandler) GetProject(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	projectID, ok := parseID(c)
	if !ok {
		apierrors.NotFound(c, "Project not found")
		return
	}

	project, err := h.projectService.Get(c.Request.Context(), userID, projectID)
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch project")
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// CreateProject creates a project owned by the current user
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), userID, req.ToInput())
	if err != nil {
		respondError(c, h.log, err, "Failed to create project")
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project))
}

// UpdateProject applies a partial update to an owned project
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	projectID, ok := parseID(c)
	if !ok {
		apierrors.NotFound(c, "Project not found")
		return
	}

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.Update(c.Request.Context(), userID, projectID, req.ToInput())
	if err != nil {
		respondError(c, h.log, err, "Failed to update project")
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// DeleteProject deletes an owned project and its tasks
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	projectID, ok := parseID(c)
	if !ok {
		apierrors.NotFound(c, "Project not found")
		return
	}

	if err := h.projectService.Delete(c.Request.Context(), userID, projectID); err != nil {
		respondError(c, h.log, err, "Failed to delete project")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}
