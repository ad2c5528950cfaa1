package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/project-tracker-api/internal/errors"
	"github.com/yukikurage/project-tracker-api/internal/services"
	"go.uber.org/zap"
)

type SuggestionHandler struct {
	suggestionService *services.SuggestionService
	log               *zap.Logger
}

func NewSuggestionHandler(suggestionService *services.SuggestionService, log *zap.Logger) *SuggestionHandler {
	return &SuggestionHandler{
		suggestionService: suggestionService,
		log:               log,
	}
}

// SuggestTasks drafts tasks for a project from free text. The drafts are
// not saved; clients create the ones they keep through POST /api/tasks.
func (h *SuggestionHandler) SuggestTasks(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	projectID, ok := parseID(c)
	if !ok {
		apierrors.NotFound(c, "Project not found")
		return
	}

	var req dto.SuggestTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	drafts, err := h.suggestionService.Suggest(c.Request.Context(), userID, projectID, req.Text)
	if err != nil {
		respondError(c, h.log, err, "Failed to generate suggestions")
		return
	}

	c.JSON(http.StatusOK, dto.ToSuggestTasksResponse(drafts))
}
