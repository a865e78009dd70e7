package mcp

import (
	"context"

	"github.com/felixgeelhaar/focusos/adapter/cli"
	"github.com/felixgeelhaar/focusos/internal/scoring/application/commands"
	"github.com/felixgeelhaar/focusos/internal/scoring/application/queries"
	"github.com/felixgeelhaar/mcp-go"
)

type scoreRecomputeInput struct {
	AreaID        string `json:"area_id,omitempty"`
	ProjectID     string `json:"project_id,omitempty"`
	CurrentAreaID string `json:"current_area_id,omitempty"`
	DeepWork      bool   `json:"deep_work,omitempty"`
}

type scoreHistoryInput struct {
	TaskID string `json:"task_id" jsonschema:"required"`
	Limit  int    `json:"limit,omitempty"`
}

func registerScoreTools(srv *mcp.Server, deps ToolDependencies) {
	srv.Tool("score.recompute").
		Description("Score all actionable tasks and return the Now (top 3) and Next (top 10) lists with explanations").
		Handler(recomputeTool(deps.App))

	srv.Tool("score.history").
		Description("List past scoring runs for a task, newest first").
		Handler(scoreHistoryTool(deps.App))
}

func recomputeTool(app *cli.App) func(context.Context, scoreRecomputeInput) (*commands.RecomputeResult, error) {
	return func(ctx context.Context, input scoreRecomputeInput) (*commands.RecomputeResult, error) {
		if app == nil || app.RecomputeHandler == nil {
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
		currentArea, err := parseOptionalUUID(input.CurrentAreaID)
		if err != nil {
			return nil, err
		}

		return app.RecomputeHandler.Handle(ctx, commands.RecomputeCommand{
			UserID:        app.CurrentUserID,
			AreaID:        areaID,
			ProjectID:     projectID,
			CurrentAreaID: currentArea,
			DeepWork:      input.DeepWork,
		})
	}
}

func scoreHistoryTool(app *cli.App) func(context.Context, scoreHistoryInput) ([]queries.RunDTO, error) {
	return func(ctx context.Context, input scoreHistoryInput) ([]queries.RunDTO, error) {
		if app == nil || app.ListRunsHandler == nil {
			return nil, errNotInitialized
		}
		taskID, err := parseUUID(input.TaskID)
		if err != nil {
			return nil, err
		}
		return app.ListRunsHandler.Handle(ctx, queries.ListRunsQuery{
			UserID: app.CurrentUserID,
			TaskID: taskID,
			Limit:  input.Limit,
		})
	}
}
