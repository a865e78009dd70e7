package api

import (
	"net/http"
	"strings"
	"time"

	focusCommands "github.com/felixgeelhaar/focusos/internal/focus/application/commands"
	inboxCommands "github.com/felixgeelhaar/focusos/internal/inbox/application/commands"
	inboxQueries "github.com/felixgeelhaar/focusos/internal/inbox/application/queries"
	inboxDomain "github.com/felixgeelhaar/focusos/internal/inbox/domain"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type captureRequest struct {
	RawText string `json:"raw_text"`
	Source  string `json:"source"`
}

type triageRequest struct {
	Type          string     `json:"type"`
	Title         string     `json:"title"`
	AreaID        *uuid.UUID `json:"area_id"`
	ProjectID     *uuid.UUID `json:"project_id"`
	EffortMinutes *int       `json:"effort_minutes"`
	DeadlineAt    *time.Time `json:"deadline_at"`
	Impact        *int       `json:"impact"`
	Urgency       *int       `json:"urgency"`
}

type startFocusRequest struct {
	TaskID *uuid.UUID `json:"task_id"`
	Mode   string     `json:"mode"`
}

type stopFocusRequest struct {
	SessionID uuid.UUID `json:"session_id"`
	Outcome   string    `json:"outcome"`
}

func (s *Server) listInbox(c *gin.Context) {
	limit, err := intQuery(c, "limit")
	if err != nil {
		badRequest(c, "limit must be a number")
		return
	}
	items, err := s.container.ListInboxHandler.Handle(c.Request.Context(), inboxQueries.ListItemsQuery{
		UserID: currentUser(c),
		Status: c.Query("status"),
		Limit:  limit,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) captureInbox(c *gin.Context) {
	var req captureRequest
	if !bindJSON(c, &req) {
		return
	}
	if strings.TrimSpace(req.RawText) == "" {
		badRequest(c, "raw_text is required")
		return
	}
	result, err := s.container.CaptureHandler.Handle(c.Request.Context(), inboxCommands.CaptureCommand{
		UserID:  currentUser(c),
		RawText: req.RawText,
		Source:  inboxDomain.Source(strings.ToUpper(req.Source)),
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) triageInbox(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req triageRequest
	if !bindJSON(c, &req) {
		return
	}
	if _, err := inboxDomain.ParseTriageType(req.Type); err != nil {
		badRequest(c, "type must be TASK|PROJECT|NOTE|SOMEDAY")
		return
	}

	result, err := s.container.TriageHandler.Handle(c.Request.Context(), inboxCommands.TriageCommand{
		UserID:        currentUser(c),
		ItemID:        id,
		Type:          req.Type,
		Title:         req.Title,
		AreaID:        req.AreaID,
		ProjectID:     req.ProjectID,
		EffortMinutes: req.EffortMinutes,
		DeadlineAt:    req.DeadlineAt,
		Impact:        req.Impact,
		Urgency:       req.Urgency,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) startFocus(c *gin.Context) {
	var req startFocusRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	result, err := s.container.StartFocusHandler.Handle(c.Request.Context(), focusCommands.StartSessionCommand{
		UserID: currentUser(c),
		TaskID: req.TaskID,
		Mode:   req.Mode,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) stopFocus(c *gin.Context) {
	var req stopFocusRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	if req.SessionID == uuid.Nil {
		badRequest(c, "session_id is required")
		return
	}
	result, err := s.container.StopFocusHandler.Handle(c.Request.Context(), focusCommands.StopSessionCommand{
		UserID:    currentUser(c),
		SessionID: req.SessionID,
		Outcome:   req.Outcome,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
