package mcp

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/focusos/adapter/cli"
	"github.com/felixgeelhaar/focusos/pkg/observability"
	"github.com/felixgeelhaar/mcp-go"
)

var errNotInitialized = errors.New("app not initialized")

// ToolDependencies provides handlers and context for MCP tools.
type ToolDependencies struct {
	App *cli.App
}

// RegisterCLITools registers MCP tools that mirror CLI functionality.
func RegisterCLITools(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return errors.New("server is required")
	}
	if deps.App == nil {
		return errors.New("app is required")
	}

	srv.Tool("cli.health").
		Description("Check CLI wiring health").
		Handler(healthTool(deps.App))

	registerScoreTools(srv, deps)
	registerPlanTools(srv, deps)
	registerTaskTools(srv, deps)
	registerInboxTools(srv, deps)
	registerFocusTools(srv, deps)
	registerSettingsTools(srv, deps)
	return nil
}

func healthTool(app *cli.App) func(context.Context, struct{}) (map[string]string, error) {
	return func(ctx context.Context, _ struct{}) (map[string]string, error) {
		if app == nil {
			return nil, errNotInitialized
		}
		out := map[string]string{"status": "ok"}
		if app.Container != nil && app.Container.Health != nil {
			results := app.Container.Health.Check(ctx)
			for name, result := range results {
				out[name] = string(result.Status)
			}
			out["status"] = string(observability.Overall(results))
		}
		return out, nil
	}
}
