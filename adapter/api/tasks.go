package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/felixgeelhaar/focusos/internal/productivity/application/commands"
	"github.com/felixgeelhaar/focusos/internal/productivity/application/queries"
	"github.com/felixgeelhaar/focusos/internal/productivity/domain/task"
	projectCommands "github.com/felixgeelhaar/focusos/internal/projects/application/commands"
	projectQueries "github.com/felixgeelhaar/focusos/internal/projects/application/queries"
	scoringQueries "github.com/felixgeelhaar/focusos/internal/scoring/application/queries"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type createTaskRequest struct {
	AreaID         uuid.UUID  `json:"area_id"`
	ProjectID      *uuid.UUID `json:"project_id"`
	ParentTaskID   *uuid.UUID `json:"parent_task_id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Status         string     `json:"status"`
	EffortMinutes  *int       `json:"effort_minutes"`
	Energy         string     `json:"energy_required"`
	DeadlineAt     *time.Time `json:"deadline_at"`
	Impact         *int       `json:"impact"`
	Urgency        *int       `json:"urgency"`
	StrategicValue *int       `json:"strategic_value"`
	RiskOfDelay    *int       `json:"risk_of_delay"`
	IsBlocker      bool       `json:"is_blocker"`
}

type updateTaskRequest struct {
	Title          *string    `json:"title"`
	Description    *string    `json:"description"`
	Status         *string    `json:"status"`
	AreaID         *uuid.UUID `json:"area_id"`
	ProjectID      *uuid.UUID `json:"project_id"`
	ClearProject   bool       `json:"clear_project"`
	EffortMinutes  *int       `json:"effort_minutes"`
	Energy         *string    `json:"energy_required"`
	DeadlineAt     *time.Time `json:"deadline_at"`
	ClearDeadline  bool       `json:"clear_deadline"`
	Impact         *int       `json:"impact"`
	Urgency        *int       `json:"urgency"`
	StrategicValue *int       `json:"strategic_value"`
	RiskOfDelay    *int       `json:"risk_of_delay"`
	IsBlocker      *bool      `json:"is_blocker"`
}

type snoozeRequest struct {
	Until *time.Time `json:"until"`
}

type subtaskRequest struct {
	Title         string `json:"title"`
	EffortMinutes *int   `json:"effort_minutes"`
	Energy        string `json:"energy_required"`
}

type splitRequest struct {
	Subtasks []subtaskRequest `json:"subtasks"`
}

type dependencyRequest struct {
	DependsOnTaskID uuid.UUID `json:"depends_on_task_id"`
}

type createAreaRequest struct {
	Name      string `json:"name"`
	Color     string `json:"color"`
	SortOrder int    `json:"sort_order"`
}

type createProjectRequest struct {
	AreaID      uuid.UUID  `json:"area_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	DeadlineAt  *time.Time `json:"deadline_at"`
	Status      string     `json:"status"`
}

func (s *Server) listTasks(c *gin.Context) {
	areaID, ok := queryID(c, "area_id")
	if !ok {
		return
	}
	projectID, ok := queryID(c, "project_id")
	if !ok {
		return
	}
	limit, err := intQuery(c, "limit")
	if err != nil {
		badRequest(c, "limit must be a number")
		return
	}

	tasks, err := s.container.ListTasksHandler.Handle(c.Request.Context(), queries.ListTasksQuery{
		UserID:    currentUser(c),
		Status:    c.Query("status"),
		AreaID:    areaID,
		ProjectID: projectID,
		Limit:     limit,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (s *Server) createTask(c *gin.Context) {
	var req createTaskRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Title == "" {
		badRequest(c, "title is required")
		return
	}
	if req.AreaID == uuid.Nil {
		badRequest(c, "area_id is required")
		return
	}

	userID := currentUser(c)
	result, err := s.container.CreateTaskHandler.Handle(c.Request.Context(), commands.CreateTaskCommand{
		UserID:         userID,
		AreaID:         req.AreaID,
		ProjectID:      req.ProjectID,
		ParentTaskID:   req.ParentTaskID,
		Title:          req.Title,
		Description:    req.Description,
		Status:         req.Status,
		EffortMinutes:  req.EffortMinutes,
		Energy:         req.Energy,
		DeadlineAt:     req.DeadlineAt,
		Impact:         req.Impact,
		Urgency:        req.Urgency,
		StrategicValue: req.StrategicValue,
		RiskOfDelay:    req.RiskOfDelay,
		IsBlocker:      req.IsBlocker,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.writeTask(c, userID, result.TaskID)
}

func (s *Server) getTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	s.writeTask(c, currentUser(c), id)
}

func (s *Server) updateTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	userID := currentUser(c)
	err := s.container.UpdateTaskHandler.Handle(c.Request.Context(), commands.UpdateTaskCommand{
		TaskID:         id,
		UserID:         userID,
		Title:          req.Title,
		Description:    req.Description,
		Status:         req.Status,
		AreaID:         req.AreaID,
		ProjectID:      req.ProjectID,
		ClearProject:   req.ClearProject,
		EffortMinutes:  req.EffortMinutes,
		Energy:         req.Energy,
		DeadlineAt:     req.DeadlineAt,
		ClearDeadline:  req.ClearDeadline,
		Impact:         req.Impact,
		Urgency:        req.Urgency,
		StrategicValue: req.StrategicValue,
		RiskOfDelay:    req.RiskOfDelay,
		IsBlocker:      req.IsBlocker,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.writeTask(c, userID, id)
}

func (s *Server) completeTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	userID := currentUser(c)
	if err := s.container.CompleteTaskHandler.Handle(c.Request.Context(), commands.CompleteTaskCommand{TaskID: id, UserID: userID}); err != nil {
		s.respondError(c, err)
		return
	}
	s.writeTask(c, userID, id)
}

func (s *Server) snoozeTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req snoozeRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Until == nil {
		badRequest(c, "until is required")
		return
	}

	userID := currentUser(c)
	err := s.container.SnoozeTaskHandler.Handle(c.Request.Context(), commands.SnoozeTaskCommand{
		TaskID: id,
		UserID: userID,
		Until:  *req.Until,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.writeTask(c, userID, id)
}

func (s *Server) splitTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req splitRequest
	if !bindJSON(c, &req) {
		return
	}
	if len(req.Subtasks) == 0 {
		badRequest(c, "subtasks are required")
		return
	}

	parts := make([]task.Subtask, 0, len(req.Subtasks))
	for _, st := range req.Subtasks {
		part := task.Subtask{Title: st.Title, EffortMinutes: st.EffortMinutes}
		if st.Energy != "" {
			energy, err := task.ParseEnergy(st.Energy)
			if err != nil {
				s.respondError(c, err)
				return
			}
			part.Energy = energy
		}
		parts = append(parts, part)
	}

	result, err := s.container.SplitTaskHandler.Handle(c.Request.Context(), commands.SplitTaskCommand{
		TaskID:   id,
		UserID:   currentUser(c),
		Subtasks: parts,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subtask_ids": result.SubtaskIDs})
}

func (s *Server) addDependency(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dependencyRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.DependsOnTaskID == uuid.Nil {
		badRequest(c, "depends_on_task_id is required")
		return
	}

	err := s.container.AddDependencyHandler.Handle(c.Request.Context(), commands.AddDependencyCommand{
		TaskID:          id,
		DependsOnTaskID: req.DependsOnTaskID,
		UserID:          currentUser(c),
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"task_id": id, "depends_on_task_id": req.DependsOnTaskID})
}

func (s *Server) scoreHistory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	limit, err := intQuery(c, "limit")
	if err != nil {
		badRequest(c, "limit must be a number")
		return
	}
	runs, err := s.container.ListRunsHandler.Handle(c.Request.Context(), scoringQueries.ListRunsQuery{
		UserID: currentUser(c),
		TaskID: id,
		Limit:  limit,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, runs)
}

func (s *Server) listAreas(c *gin.Context) {
	areas, err := s.container.ListAreasHandler.Handle(c.Request.Context(), currentUser(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, areas)
}

func (s *Server) createArea(c *gin.Context) {
	var req createAreaRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Name == "" {
		badRequest(c, "name is required")
		return
	}
	id, err := s.container.CreateAreaHandler.Handle(c.Request.Context(), commands.CreateAreaCommand{
		UserID:    currentUser(c),
		Name:      req.Name,
		Color:     req.Color,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, queries.AreaDTO{ID: id, Name: req.Name, Color: req.Color, SortOrder: req.SortOrder})
}

func (s *Server) listProjects(c *gin.Context) {
	areaID, ok := queryID(c, "area_id")
	if !ok {
		return
	}
	projects, err := s.container.ListProjectsHandler.Handle(c.Request.Context(), projectQueries.ListProjectsQuery{
		UserID: currentUser(c),
		AreaID: areaID,
		Status: c.Query("status"),
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (s *Server) createProject(c *gin.Context) {
	var req createProjectRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Name == "" {
		badRequest(c, "name is required")
		return
	}
	if req.AreaID == uuid.Nil {
		badRequest(c, "area_id is required")
		return
	}
	result, err := s.container.CreateProjectHandler.Handle(c.Request.Context(), projectCommands.CreateProjectCommand{
		UserID:      currentUser(c),
		AreaID:      req.AreaID,
		Name:        req.Name,
		Description: req.Description,
		DeadlineAt:  req.DeadlineAt,
		Status:      req.Status,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": result.ProjectID})
}

func (s *Server) writeTask(c *gin.Context, userID, taskID uuid.UUID) {
	dto, err := s.container.GetTaskHandler.Handle(c.Request.Context(), queries.GetTaskQuery{TaskID: taskID, UserID: userID})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

func intQuery(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
