package mcp

import (
	"context"

	identitySettings "github.com/felixgeelhaar/focusos/internal/identity/application/settings"
	"github.com/felixgeelhaar/mcp-go"
)

type settingsUpdateInput struct {
	DefaultAvailableMinutes *int  `json:"default_available_minutes,omitempty"`
	DeepWorkEnabled         *bool `json:"deep_work_enabled,omitempty"`
}

func registerSettingsTools(srv *mcp.Server, deps ToolDependencies) {
	app := deps.App

	srv.Tool("settings.get").
		Description("Get planning preferences").
		Handler(func(ctx context.Context, _ struct{}) (*identitySettings.Preferences, error) {
			if app == nil || app.SettingsService == nil {
				return nil, errNotInitialized
			}
			prefs, err := app.SettingsService.Get(ctx, app.CurrentUserID)
			if err != nil {
				return nil, err
			}
			return &prefs, nil
		})

	srv.Tool("settings.update").
		Description("Update planning preferences").
		Handler(func(ctx context.Context, input settingsUpdateInput) (*identitySettings.Preferences, error) {
			if app == nil || app.SettingsService == nil {
				return nil, errNotInitialized
			}
			prefs, err := app.SettingsService.Update(ctx, app.CurrentUserID, identitySettings.Update{
				DefaultAvailableMinutes: input.DefaultAvailableMinutes,
				DeepWorkEnabled:         input.DeepWorkEnabled,
			})
			if err != nil {
				return nil, err
			}
			return &prefs, nil
		})
}
