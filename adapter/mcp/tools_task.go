package mcp

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/focusos/adapter/cli"
	"github.com/felixgeelhaar/focusos/internal/productivity/application/commands"
	"github.com/felixgeelhaar/focusos/internal/productivity/application/queries"
	"github.com/felixgeelhaar/mcp-go"
)

type taskCreateInput struct {
	Title          string `json:"title" jsonschema:"required"`
	AreaID         string `json:"area_id" jsonschema:"required"`
	ProjectID      string `json:"project_id,omitempty"`
	Description    string `json:"description,omitempty"`
	Status         string `json:"status,omitempty"`
	EffortMinutes  *int   `json:"effort_minutes,omitempty"`
	Energy         string `json:"energy_required,omitempty"`
	Deadline       string `json:"deadline,omitempty"`
	Impact         *int   `json:"impact,omitempty"`
	Urgency        *int   `json:"urgency,omitempty"`
	StrategicValue *int   `json:"strategic_value,omitempty"`
	RiskOfDelay    *int   `json:"risk_of_delay,omitempty"`
	IsBlocker      bool   `json:"is_blocker,omitempty"`
}

type taskListInput struct {
	Status    string `json:"status,omitempty"`
	AreaID    string `json:"area_id,omitempty"`
	ProjectID string `json:"project_id,omitempty"`
	Limit     int    `json:"limit,omitempty"`
}

type taskIDInput struct {
	TaskID string `json:"task_id" jsonschema:"required"`
}

type taskSnoozeInput struct {
	TaskID string `json:"task_id" jsonschema:"required"`
	Until  string `json:"until" jsonschema:"required"`
}

type areaCreateInput struct {
	Name      string `json:"name" jsonschema:"required"`
	Color     string `json:"color,omitempty"`
	SortOrder int    `json:"sort_order,omitempty"`
}

func registerTaskTools(srv *mcp.Server, deps ToolDependencies) {
	app := deps.App

	srv.Tool("task.create").
		Description("Create a task in an area. Ratings are 0-5").
		Handler(taskCreateTool(app))

	srv.Tool("task.list").
		Description("List tasks, optionally filtered by status, area or project").
		Handler(taskListTool(app))

	srv.Tool("task.show").
		Description("Show a single task").
		Handler(func(ctx context.Context, input taskIDInput) (*queries.TaskDTO, error) {
			if app == nil || app.GetTaskHandler == nil {
				return nil, errNotInitialized
			}
			taskID, err := parseUUID(input.TaskID)
			if err != nil {
				return nil, err
			}
			return app.GetTaskHandler.Handle(ctx, queries.GetTaskQuery{TaskID: taskID, UserID: app.CurrentUserID})
		})

	srv.Tool("task.complete").
		Description("Mark a task as done").
		Handler(taskCompleteTool(app))

	srv.Tool("task.snooze").
		Description("Hide a task from ranking until a date (YYYY-MM-DD, RFC 3339 or 3d)").
		Handler(taskSnoozeTool(app))

	srv.Tool("area.list").
		Description("List active areas of responsibility").
		Handler(func(ctx context.Context, _ struct{}) ([]queries.AreaDTO, error) {
			if app == nil || app.ListAreasHandler == nil {
				return nil, errNotInitialized
			}
			return app.ListAreasHandler.Handle(ctx, app.CurrentUserID)
		})

	srv.Tool("area.create").
		Description("Create an area of responsibility").
		Handler(func(ctx context.Context, input areaCreateInput) (map[string]any, error) {
			if app == nil || app.CreateAreaHandler == nil {
				return nil, errNotInitialized
			}
			id, err := app.CreateAreaHandler.Handle(ctx, commands.CreateAreaCommand{
				UserID:    app.CurrentUserID,
				Name:      input.Name,
				Color:     input.Color,
				SortOrder: input.SortOrder,
			})
			if err != nil {
				return nil, err
			}
			return map[string]any{"id": id, "name": input.Name}, nil
		})
}

func taskCreateTool(app *cli.App) func(context.Context, taskCreateInput) (*queries.TaskDTO, error) {
	return func(ctx context.Context, input taskCreateInput) (*queries.TaskDTO, error) {
		if app == nil || app.CreateTaskHandler == nil {
			return nil, errNotInitialized
		}
		if input.Title == "" {
			return nil, errors.New("title is required")
		}
		areaID, err := parseUUID(input.AreaID)
		if err != nil {
			return nil, err
		}
		projectID, err := parseOptionalUUID(input.ProjectID)
		if err != nil {
			return nil, err
		}
		deadline, err := parseOptionalWhen(app, input.Deadline)
		if err != nil {
			return nil, err
		}

		result, err := app.CreateTaskHandler.Handle(ctx, commands.CreateTaskCommand{
			UserID:         app.CurrentUserID,
			AreaID:         areaID,
			ProjectID:      projectID,
			Title:          input.Title,
			Description:    input.Description,
			Status:         input.Status,
			EffortMinutes:  input.EffortMinutes,
			Energy:         input.Energy,
			DeadlineAt:     deadline,
			Impact:         input.Impact,
			Urgency:        input.Urgency,
			StrategicValue: input.StrategicValue,
			RiskOfDelay:    input.RiskOfDelay,
			IsBlocker:      input.IsBlocker,
		})
		if err != nil {
			return nil, err
		}
		return app.GetTaskHandler.Handle(ctx, queries.GetTaskQuery{TaskID: result.TaskID, UserID: app.CurrentUserID})
	}
}

func taskListTool(app *cli.App) func(context.Context, taskListInput) ([]queries.TaskDTO, error) {
	return func(ctx context.Context, input taskListInput) ([]queries.TaskDTO, error) {
		if app == nil || app.ListTasksHandler == nil {
			return nil, errNotInitialized
		}
		areaID, err := parseOptionalUUID(input.AreaID)
		if err != nil {
			return nil, err
		}
		projectID, err := parseOptionalUUID(input.ProjectID)
		if err != nil {
			return nil, err
		}
		return app.ListTasksHandler.Handle(ctx, queries.ListTasksQuery{
			UserID:    app.CurrentUserID,
			Status:    input.Status,
			AreaID:    areaID,
			ProjectID: projectID,
			Limit:     input.Limit,
		})
	}
}

func taskCompleteTool(app *cli.App) func(context.Context, taskIDInput) (map[string]any, error) {
	return func(ctx context.Context, input taskIDInput) (map[string]any, error) {
		if app == nil || app.CompleteTaskHandler == nil {
			return nil, errNotInitialized
		}
		taskID, err := parseUUID(input.TaskID)
		if err != nil {
			return nil, err
		}
		if err := app.CompleteTaskHandler.Handle(ctx, commands.CompleteTaskCommand{
			TaskID: taskID,
			UserID: app.CurrentUserID,
		}); err != nil {
			return nil, err
		}
		return map[string]any{"task_id": taskID, "status": "DONE"}, nil
	}
}

func taskSnoozeTool(app *cli.App) func(context.Context, taskSnoozeInput) (map[string]any, error) {
	return func(ctx context.Context, input taskSnoozeInput) (map[string]any, error) {
		if app == nil || app.SnoozeTaskHandler == nil {
			return nil, errNotInitialized
		}
		taskID, err := parseUUID(input.TaskID)
		if err != nil {
			return nil, err
		}
		if input.Until == "" {
			return nil, errors.New("until is required")
		}
		until, err := app.When(input.Until)
		if err != nil {
			return nil, err
		}
		if err := app.SnoozeTaskHandler.Handle(ctx, commands.SnoozeTaskCommand{
			TaskID: taskID,
			UserID: app.CurrentUserID,
			Until:  until,
		}); err != nil {
			return nil, err
		}
		return map[string]any{"task_id": taskID, "snoozed_until": until}, nil
	}
}
