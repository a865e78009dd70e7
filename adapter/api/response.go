package api

import (
	"errors"
	"net/http"

	focusDomain "github.com/felixgeelhaar/focusos/internal/focus/domain"
	"github.com/felixgeelhaar/focusos/internal/identity/application/settings"
	inboxCommands "github.com/felixgeelhaar/focusos/internal/inbox/application/commands"
	inboxDomain "github.com/felixgeelhaar/focusos/internal/inbox/domain"
	"github.com/felixgeelhaar/focusos/internal/productivity/domain/area"
	"github.com/felixgeelhaar/focusos/internal/productivity/domain/task"
	projectsDomain "github.com/felixgeelhaar/focusos/internal/projects/domain"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var notFoundErrors = []error{
	task.ErrTaskNotFound,
	area.ErrAreaNotFound,
	projectsDomain.ErrProjectNotFound,
	inboxDomain.ErrItemNotFound,
	focusDomain.ErrSessionNotFound,
}

var badRequestErrors = []error{
	task.ErrEmptyTitle,
	task.ErrAreaRequired,
	task.ErrInvalidStatus,
	task.ErrInvalidEnergy,
	task.ErrInvalidEffort,
	task.ErrTaskAlreadyComplete,
	task.ErrSnoozeRequired,
	task.ErrSelfDependency,
	task.ErrSubtasksRequired,
	area.ErrEmptyName,
	projectsDomain.ErrEmptyName,
	projectsDomain.ErrAreaRequired,
	projectsDomain.ErrInvalidStatus,
	inboxDomain.ErrEmptyText,
	inboxDomain.ErrInvalidTriageType,
	inboxDomain.ErrInvalidStatus,
	inboxCommands.ErrAreaRequired,
	settings.ErrInvalidAvailableMinutes,
}

func statusFor(err error) int {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return http.StatusNotFound
		}
	}
	if errors.Is(err, inboxDomain.ErrAlreadyTriaged) {
		return http.StatusConflict
	}
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

// respondError writes {"error": message}. Internal errors are logged and hidden.
func (s *Server) respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request.Context(), "request failed",
			"path", c.FullPath(),
			"error", err,
		)
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// pathID parses the :id parameter, writing 404 when it is not a UUID.
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return uuid.Nil, false
	}
	return id, true
}

// queryID parses an optional UUID query parameter.
func queryID(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		badRequest(c, name+" must be a UUID")
		return nil, false
	}
	return &id, true
}

// bindOptionalJSON decodes the body when there is one.
func bindOptionalJSON(c *gin.Context, dst any) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		badRequest(c, "invalid JSON body")
		return false
	}
	return true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		badRequest(c, "invalid JSON body")
		return false
	}
	return true
}
