package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/felixgeelhaar/focusos/adapter/cli"
	inboxQueries "github.com/felixgeelhaar/focusos/internal/inbox/application/queries"
	planningQueries "github.com/felixgeelhaar/focusos/internal/planning/application/queries"
	productivityQueries "github.com/felixgeelhaar/focusos/internal/productivity/application/queries"
	"github.com/felixgeelhaar/mcp-go"
)

type resourceHandler = func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error)

// RegisterResources registers read-only views of the user's data.
func RegisterResources(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return fmt.Errorf("server is required")
	}
	app := deps.App

	srv.Resource("focusos://tasks/active").
		Name("Active Tasks").
		Description("Tasks in NEXT or IN_PROGRESS").
		MimeType("application/json").
		Handler(activeTasksResource(app))

	srv.Resource("focusos://areas").
		Name("Areas").
		Description("Active areas of responsibility").
		MimeType("application/json").
		Handler(jsonResource(func(ctx context.Context) (any, error) {
			if app == nil || app.ListAreasHandler == nil {
				return nil, errNotInitialized
			}
			return app.ListAreasHandler.Handle(ctx, app.CurrentUserID)
		}))

	srv.Resource("focusos://plan/today").
		Name("Today's Plan").
		Description("The Must / Should / Could plan generated for today").
		MimeType("application/json").
		Handler(todayPlanResource(app))

	srv.Resource("focusos://inbox").
		Name("Inbox").
		Description("Unprocessed inbox items").
		MimeType("application/json").
		Handler(jsonResource(func(ctx context.Context) (any, error) {
			if app == nil || app.ListInboxHandler == nil {
				return nil, errNotInitialized
			}
			return app.ListInboxHandler.Handle(ctx, inboxQueries.ListItemsQuery{UserID: app.CurrentUserID})
		}))

	return nil
}

func activeTasksResource(app *cli.App) resourceHandler {
	return jsonResource(func(ctx context.Context) (any, error) {
		if app == nil || app.ListTasksHandler == nil {
			return nil, errNotInitialized
		}
		var active []productivityQueries.TaskDTO
		for _, status := range []string{"NEXT", "IN_PROGRESS"} {
			tasks, err := app.ListTasksHandler.Handle(ctx, productivityQueries.ListTasksQuery{
				UserID: app.CurrentUserID,
				Status: status,
			})
			if err != nil {
				return nil, err
			}
			active = append(active, tasks...)
		}
		return active, nil
	})
}

func todayPlanResource(app *cli.App) resourceHandler {
	return jsonResource(func(ctx context.Context) (any, error) {
		if app == nil || app.GetTodayPlanHandler == nil {
			return nil, errNotInitialized
		}
		return app.GetTodayPlanHandler.Handle(ctx, planningQueries.GetTodayPlanQuery{UserID: app.CurrentUserID})
	})
}

func jsonResource(load func(ctx context.Context) (any, error)) resourceHandler {
	return func(ctx context.Context, uri string, _ map[string]string) (*mcp.ResourceContent, error) {
		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}
		return &mcp.ResourceContent{
			URI:      uri,
			MimeType: "application/json",
			Text:     string(data),
		}, nil
	}
}
