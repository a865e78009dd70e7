package mcp

import (
	"context"

	"github.com/felixgeelhaar/focusos/adapter/cli"
	"github.com/felixgeelhaar/focusos/internal/planning/application/commands"
	"github.com/felixgeelhaar/focusos/internal/planning/application/queries"
	"github.com/felixgeelhaar/focusos/internal/planning/domain"
	"github.com/felixgeelhaar/mcp-go"
)

type planGenerateInput struct {
	AvailableMinutes int    `json:"available_minutes,omitempty"`
	DeepWork         *bool  `json:"deep_work,omitempty"`
	AreaFocusID      string `json:"area_focus_id,omitempty"`
}

func registerPlanTools(srv *mcp.Server, deps ToolDependencies) {
	srv.Tool("plan.generate").
		Description("Generate today's Must / Should / Could plan from the current ranking").
		Handler(planGenerateTool(deps.App))

	srv.Tool("plan.today").
		Description("Return today's stored plan, or null if none was generated").
		Handler(planTodayTool(deps.App))
}

func planGenerateTool(app *cli.App) func(context.Context, planGenerateInput) (*domain.DailyPlan, error) {
	return func(ctx context.Context, input planGenerateInput) (*domain.DailyPlan, error) {
		if app == nil || app.GeneratePlanHandler == nil {
			return nil, errNotInitialized
		}
		areaFocus, err := parseOptionalUUID(input.AreaFocusID)
		if err != nil {
			return nil, err
		}

		command := commands.GeneratePlanCommand{
			UserID:      app.CurrentUserID,
			DeepWork:    input.DeepWork,
			AreaFocusID: areaFocus,
		}
		if input.AvailableMinutes != 0 {
			command.AvailableMinutes = &input.AvailableMinutes
		}
		return app.GeneratePlanHandler.Handle(ctx, command)
	}
}

func planTodayTool(app *cli.App) func(context.Context, struct{}) (*domain.DailyPlan, error) {
	return func(ctx context.Context, _ struct{}) (*domain.DailyPlan, error) {
		if app == nil || app.GetTodayPlanHandler == nil {
			return nil, errNotInitialized
		}
		return app.GetTodayPlanHandler.Handle(ctx, queries.GetTodayPlanQuery{UserID: app.CurrentUserID})
	}
}
