package api

import (
	"net/http"

	"github.com/felixgeelhaar/focusos/internal/identity/application/settings"
	planningCommands "github.com/felixgeelhaar/focusos/internal/planning/application/commands"
	planningQueries "github.com/felixgeelhaar/focusos/internal/planning/application/queries"
	scoringCommands "github.com/felixgeelhaar/focusos/internal/scoring/application/commands"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type recomputeRequest struct {
	AreaID    *uuid.UUID `json:"area_id"`
	ProjectID *uuid.UUID `json:"project_id"`
	Context   struct {
		CurrentAreaID *uuid.UUID `json:"current_area_id"`
		DeepWork      bool       `json:"deep_work"`
	} `json:"context"`
}

type generatePlanRequest struct {
	AvailableMinutes *int       `json:"available_minutes"`
	DeepWork         *bool      `json:"deep_work"`
	AreaFocusID      *uuid.UUID `json:"area_focus_id"`
}

type settingsRequest struct {
	DefaultAvailableMinutes *int  `json:"default_available_minutes"`
	DeepWorkEnabled         *bool `json:"deep_work_enabled"`
}

func (s *Server) recompute(c *gin.Context) {
	var req recomputeRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	result, err := s.container.RecomputeHandler.Handle(c.Request.Context(), scoringCommands.RecomputeCommand{
		UserID:        currentUser(c),
		AreaID:        req.AreaID,
		ProjectID:     req.ProjectID,
		CurrentAreaID: req.Context.CurrentAreaID,
		DeepWork:      req.Context.DeepWork,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) generatePlan(c *gin.Context) {
	var req generatePlanRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	plan, err := s.container.GeneratePlanHandler.Handle(c.Request.Context(), planningCommands.GeneratePlanCommand{
		UserID:           currentUser(c),
		AvailableMinutes: req.AvailableMinutes,
		DeepWork:         req.DeepWork,
		AreaFocusID:      req.AreaFocusID,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// todayPlan answers null when nothing was generated today.
func (s *Server) todayPlan(c *gin.Context) {
	plan, err := s.container.GetTodayPlanHandler.Handle(c.Request.Context(), planningQueries.GetTodayPlanQuery{UserID: currentUser(c)})
	if err != nil {
		s.respondError(c, err)
		return
	}
	if plan == nil {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (s *Server) getSettings(c *gin.Context) {
	prefs, err := s.container.SettingsService.Get(c.Request.Context(), currentUser(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

func (s *Server) updateSettings(c *gin.Context) {
	var req settingsRequest
	if !bindJSON(c, &req) {
		return
	}
	prefs, err := s.container.SettingsService.Update(c.Request.Context(), currentUser(c), settings.Update{
		DefaultAvailableMinutes: req.DefaultAvailableMinutes,
		DeepWorkEnabled:         req.DeepWorkEnabled,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}
