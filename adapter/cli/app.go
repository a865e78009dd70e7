package cli

import (
	"errors"

	internalApp "github.com/felixgeelhaar/focusos/internal/app"
	focusCommands "github.com/felixgeelhaar/focusos/internal/focus/application/commands"
	identitySettings "github.com/felixgeelhaar/focusos/internal/identity/application/settings"
	inboxCommands "github.com/felixgeelhaar/focusos/internal/inbox/application/commands"
	inboxQueries "github.com/felixgeelhaar/focusos/internal/inbox/application/queries"
	planningCommands "github.com/felixgeelhaar/focusos/internal/planning/application/commands"
	planningQueries "github.com/felixgeelhaar/focusos/internal/planning/application/queries"
	"github.com/felixgeelhaar/focusos/internal/productivity/application/commands"
	"github.com/felixgeelhaar/focusos/internal/productivity/application/queries"
	projectCommands "github.com/felixgeelhaar/focusos/internal/projects/application/commands"
	projectQueries "github.com/felixgeelhaar/focusos/internal/projects/application/queries"
	scoringCommands "github.com/felixgeelhaar/focusos/internal/scoring/application/commands"
	scoringQueries "github.com/felixgeelhaar/focusos/internal/scoring/application/queries"
	sharedDomain "github.com/felixgeelhaar/focusos/internal/shared/domain"
	"github.com/google/uuid"
)

// ErrNotInitialized is returned by commands run without a wired application.
var ErrNotInitialized = errors.New("application not initialized - database connection required")

// App holds the CLI application dependencies.
type App struct {
	// Task and area handlers
	CreateTaskHandler    *commands.CreateTaskHandler
	UpdateTaskHandler    *commands.UpdateTaskHandler
	CompleteTaskHandler  *commands.CompleteTaskHandler
	SnoozeTaskHandler    *commands.SnoozeTaskHandler
	SplitTaskHandler     *commands.SplitTaskHandler
	AddDependencyHandler *commands.AddDependencyHandler
	CreateAreaHandler    *commands.CreateAreaHandler
	ListTasksHandler     *queries.ListTasksHandler
	GetTaskHandler       *queries.GetTaskHandler
	ListAreasHandler     *queries.ListAreasHandler

	// Scoring and planning
	RecomputeHandler    *scoringCommands.RecomputeHandler
	ListRunsHandler     *scoringQueries.ListRunsHandler
	GeneratePlanHandler *planningCommands.GeneratePlanHandler
	GetTodayPlanHandler *planningQueries.GetTodayPlanHandler

	// Projects
	CreateProjectHandler *projectCommands.CreateProjectHandler
	ListProjectsHandler  *projectQueries.ListProjectsHandler

	// Inbox
	CaptureHandler   *inboxCommands.CaptureHandler
	TriageHandler    *inboxCommands.TriageHandler
	ListInboxHandler *inboxQueries.ListItemsHandler

	// Focus
	StartFocusHandler *focusCommands.StartSessionHandler
	StopFocusHandler  *focusCommands.StopSessionHandler

	SettingsService *identitySettings.Service

	// Time resolves "today" and parses local dates.
	Time *sharedDomain.TimeService

	// Container backs the serve commands.
	Container *internalApp.Container

	// Current user (configured per environment)
	CurrentUserID uuid.UUID
}

// NewApp creates a CLI application backed by the container.
func NewApp(c *internalApp.Container) *App {
	return &App{
		CreateTaskHandler:    c.CreateTaskHandler,
		UpdateTaskHandler:    c.UpdateTaskHandler,
		CompleteTaskHandler:  c.CompleteTaskHandler,
		SnoozeTaskHandler:    c.SnoozeTaskHandler,
		SplitTaskHandler:     c.SplitTaskHandler,
		AddDependencyHandler: c.AddDependencyHandler,
		CreateAreaHandler:    c.CreateAreaHandler,
		ListTasksHandler:     c.ListTasksHandler,
		GetTaskHandler:       c.GetTaskHandler,
		ListAreasHandler:     c.ListAreasHandler,
		RecomputeHandler:     c.RecomputeHandler,
		ListRunsHandler:      c.ListRunsHandler,
		GeneratePlanHandler:  c.GeneratePlanHandler,
		GetTodayPlanHandler:  c.GetTodayPlanHandler,
		CreateProjectHandler: c.CreateProjectHandler,
		ListProjectsHandler:  c.ListProjectsHandler,
		CaptureHandler:       c.CaptureHandler,
		TriageHandler:        c.TriageHandler,
		ListInboxHandler:     c.ListInboxHandler,
		StartFocusHandler:    c.StartFocusHandler,
		StopFocusHandler:     c.StopFocusHandler,
		SettingsService:      c.SettingsService,
		Time:                 c.Time,
		Container:            c,
		CurrentUserID:        c.UserID,
	}
}

// SetCurrentUserID updates the current user ID.
func (a *App) SetCurrentUserID(id uuid.UUID) {
	a.CurrentUserID = id
}

// app is the global CLI application instance
var app *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return app
}

// RequireApp returns the global app or ErrNotInitialized.
func RequireApp() (*App, error) {
	if app == nil {
		return nil, ErrNotInitialized
	}
	return app, nil
}
