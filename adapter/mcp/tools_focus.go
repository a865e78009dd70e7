package mcp

import (
	"context"

	"github.com/felixgeelhaar/focusos/adapter/cli"
	"github.com/felixgeelhaar/focusos/internal/focus/application/commands"
	"github.com/felixgeelhaar/mcp-go"
)

type focusStartInput struct {
	TaskID string `json:"task_id,omitempty"`
	Mode   string `json:"mode,omitempty"`
}

type focusStopInput struct {
	SessionID string `json:"session_id" jsonschema:"required"`
	Outcome   string `json:"outcome,omitempty"`
}

func registerFocusTools(srv *mcp.Server, deps ToolDependencies) {
	srv.Tool("focus.start").
		Description("Start a focus session, optionally on a task").
		Handler(focusStartTool(deps.App))

	srv.Tool("focus.stop").
		Description("Stop a focus session and record the outcome").
		Handler(focusStopTool(deps.App))
}

func focusStartTool(app *cli.App) func(context.Context, focusStartInput) (*commands.SessionResult, error) {
	return func(ctx context.Context, input focusStartInput) (*commands.SessionResult, error) {
		if app == nil || app.StartFocusHandler == nil {
			return nil, errNotInitialized
		}
		taskID, err := parseOptionalUUID(input.TaskID)
		if err != nil {
			return nil, err
		}
		return app.StartFocusHandler.Handle(ctx, commands.StartSessionCommand{
			UserID: app.CurrentUserID,
			TaskID: taskID,
			Mode:   input.Mode,
		})
	}
}

func focusStopTool(app *cli.App) func(context.Context, focusStopInput) (*commands.SessionResult, error) {
	return func(ctx context.Context, input focusStopInput) (*commands.SessionResult, error) {
		if app == nil || app.StopFocusHandler == nil {
			return nil, errNotInitialized
		}
		sessionID, err := parseUUID(input.SessionID)
		if err != nil {
			return nil, err
		}
		return app.StopFocusHandler.Handle(ctx, commands.StopSessionCommand{
			UserID:    app.CurrentUserID,
			SessionID: sessionID,
			Outcome:   input.Outcome,
		})
	}
}
