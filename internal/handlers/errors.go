package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/project-tracker-api/internal/errors"
	"github.com/yukikurage/project-tracker-api/internal/middleware"
	"github.com/yukikurage/project-tracker-api/internal/services"
	"go.uber.org/zap"
)

// respondError maps a service error to its response. Unexpected errors are
// logged and answered with fallback so no internal detail leaks.
func respondError(c *gin.Context, log *zap.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrUnauthenticated),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.Unauthorized(c, "Not logged in")
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, "Invalid credentials")
	case errors.Is(err, services.ErrDuplicateEmail):
		apierrors.BadRequest(c, "Email already in use")
	case errors.Is(err, services.ErrInvalidUser),
		errors.Is(err, services.ErrNameRequired),
		errors.Is(err, services.ErrTitleRequired):
		apierrors.BadRequest(c, "Invalid request body")
	case errors.Is(err, services.ErrPasswordTooLong):
		apierrors.BadRequest(c, "Password must be at most 72 bytes")
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, "Project not found")
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrInvalidProject):
		apierrors.BadRequest(c, "Invalid project")
	case errors.Is(err, services.ErrSuggestionTextRequired):
		apierrors.BadRequest(c, "Text is required")
	case errors.Is(err, services.ErrSuggestionsNotConfigured):
		apierrors.ServiceUnavailable(c, "Task suggestions are not configured")
	case errors.Is(err, services.ErrSuggestionFailed),
		errors.Is(err, services.ErrNoSuggestions):
		log.Warn("task suggestion failed",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(err),
		)
		apierrors.BadGateway(c, "Failed to generate suggestions")
	default:
		_ = c.Error(err)
		log.Error(fallback,
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(err),
		)
		apierrors.InternalError(c, fallback)
	}
}

// parseID reads the :id path parameter. Anything that is not a positive
// integer cannot name a stored row.
func parseID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// actorID returns the authenticated user, answering 401 when absent
func actorID(c *gin.Context) (uint64, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "Not logged in")
		return 0, false
	}
	return userID, true
}
