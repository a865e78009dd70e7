package mcp

import (
	"context"
	"strings"

	"github.com/felixgeelhaar/focusos/adapter/cli"
	inboxCommands "github.com/felixgeelhaar/focusos/internal/inbox/application/commands"
	"github.com/felixgeelhaar/focusos/internal/inbox/application/queries"
	"github.com/felixgeelhaar/focusos/internal/inbox/domain"
	"github.com/felixgeelhaar/mcp-go"
)

type inboxCaptureInput struct {
	RawText string `json:"raw_text" jsonschema:"required"`
	Source  string `json:"source,omitempty"`
}

type inboxListInput struct {
	Status string `json:"status,omitempty"`
	Limit  int    `json:"limit,omitempty"`
}

type inboxTriageInput struct {
	ItemID        string `json:"item_id" jsonschema:"required"`
	Type          string `json:"type" jsonschema:"required"`
	Title         string `json:"title,omitempty"`
	AreaID        string `json:"area_id,omitempty"`
	ProjectID     string `json:"project_id,omitempty"`
	EffortMinutes *int   `json:"effort_minutes,omitempty"`
	Deadline      string `json:"deadline,omitempty"`
	Impact        *int   `json:"impact,omitempty"`
	Urgency       *int   `json:"urgency,omitempty"`
}

func registerInboxTools(srv *mcp.Server, deps ToolDependencies) {
	app := deps.App

	srv.Tool("inbox.capture").
		Description("Capture free text into the inbox and get a suggested triage type").
		Handler(inboxCaptureTool(app))

	srv.Tool("inbox.list").
		Description("List inbox items, unprocessed by default").
		Handler(func(ctx context.Context, input inboxListInput) ([]queries.ItemDTO, error) {
			if app == nil || app.ListInboxHandler == nil {
				return nil, errNotInitialized
			}
			return app.ListInboxHandler.Handle(ctx, queries.ListItemsQuery{
				UserID: app.CurrentUserID,
				Status: input.Status,
				Limit:  input.Limit,
			})
		})

	srv.Tool("inbox.triage").
		Description("Turn an inbox item into a TASK, PROJECT, NOTE or SOMEDAY task").
		Handler(inboxTriageTool(app))
}

func inboxCaptureTool(app *cli.App) func(context.Context, inboxCaptureInput) (*inboxCommands.CaptureResult, error) {
	return func(ctx context.Context, input inboxCaptureInput) (*inboxCommands.CaptureResult, error) {
		if app == nil || app.CaptureHandler == nil {
			return nil, errNotInitialized
		}
		source := domain.SourceMCP
		if input.Source != "" {
			source = domain.Source(strings.ToUpper(input.Source))
		}
		return app.CaptureHandler.Handle(ctx, inboxCommands.CaptureCommand{
			UserID:  app.CurrentUserID,
			RawText: input.RawText,
			Source:  source,
		})
	}
}

func inboxTriageTool(app *cli.App) func(context.Context, inboxTriageInput) (*inboxCommands.TriageResult, error) {
	return func(ctx context.Context, input inboxTriageInput) (*inboxCommands.TriageResult, error) {
		if app == nil || app.TriageHandler == nil {
			return nil, errNotInitialized
		}
		itemID, err := parseUUID(input.ItemID)
		if err != nil {
			return nil, err
		}
		areaID, err := parseOptionalUUID(input.AreaID)
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

		return app.TriageHandler.Handle(ctx, inboxCommands.TriageCommand{
			UserID:        app.CurrentUserID,
			ItemID:        itemID,
			Type:          input.Type,
			Title:         input.Title,
			AreaID:        areaID,
			ProjectID:     projectID,
			EffortMinutes: input.EffortMinutes,
			DeadlineAt:    deadline,
			Impact:        input.Impact,
			Urgency:       input.Urgency,
		})
	}
}
