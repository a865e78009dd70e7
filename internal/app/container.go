// Package app wires configuration, storage, and handlers into one container
// shared by the CLI, the HTTP API, and the MCP server.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/focusos/internal/activity"
	focusCommands "github.com/felixgeelhaar/focusos/internal/focus/application/commands"
	"github.com/felixgeelhaar/focusos/internal/identity/application/session"
	identitySettings "github.com/felixgeelhaar/focusos/internal/identity/application/settings"
	inboxCommands "github.com/felixgeelhaar/focusos/internal/inbox/application/commands"
	inboxQueries "github.com/felixgeelhaar/focusos/internal/inbox/application/queries"
	inboxServices "github.com/felixgeelhaar/focusos/internal/inbox/services"
	planningCommands "github.com/felixgeelhaar/focusos/internal/planning/application/commands"
	planningQueries "github.com/felixgeelhaar/focusos/internal/planning/application/queries"
	"github.com/felixgeelhaar/focusos/internal/productivity/application/commands"
	"github.com/felixgeelhaar/focusos/internal/productivity/application/queries"
	projectCommands "github.com/felixgeelhaar/focusos/internal/projects/application/commands"
	projectQueries "github.com/felixgeelhaar/focusos/internal/projects/application/queries"
	"github.com/felixgeelhaar/focusos/internal/scoring/application/cache"
	scoringCommands "github.com/felixgeelhaar/focusos/internal/scoring/application/commands"
	scoringQueries "github.com/felixgeelhaar/focusos/internal/scoring/application/queries"
	"github.com/felixgeelhaar/focusos/internal/scoring/application/services"
	sharedApplication "github.com/felixgeelhaar/focusos/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/focusos/internal/shared/domain"
	"github.com/felixgeelhaar/focusos/internal/shared/infrastructure/database"
	_ "github.com/felixgeelhaar/focusos/internal/shared/infrastructure/database/postgres" // Register PostgreSQL driver
	_ "github.com/felixgeelhaar/focusos/internal/shared/infrastructure/database/sqlite"   // Register SQLite driver
	"github.com/felixgeelhaar/focusos/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/focusos/internal/shared/infrastructure/migrations"
	"github.com/felixgeelhaar/focusos/pkg/config"
	"github.com/felixgeelhaar/focusos/pkg/observability"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Container holds all application dependencies.
type Container struct {
	Config  *config.Config
	Logger  *slog.Logger
	Clock   sharedDomain.Clock
	Time    *sharedDomain.TimeService
	Metrics observability.Metrics
	Health  *observability.HealthRegistry

	// UserID is the local user for the CLI and MCP server.
	UserID uuid.UUID

	// Infrastructure
	DB             database.Connection
	RedisClient    *redis.Client
	EventPublisher eventbus.Publisher
	UnitOfWork     sharedApplication.UnitOfWork
	Repos          *Repositories
	ScoreCache     cache.Cache
	Recorder       *activity.EventRecorder
	Sessions       session.Resolver

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

	// Scoring
	Engine           *services.Engine
	RecomputeHandler *scoringCommands.RecomputeHandler
	ListRunsHandler  *scoringQueries.ListRunsHandler

	// Planning
	GeneratePlanHandler *planningCommands.GeneratePlanHandler
	GetTodayPlanHandler *planningQueries.GetTodayPlanHandler

	// Projects
	CreateProjectHandler *projectCommands.CreateProjectHandler
	ListProjectsHandler  *projectQueries.ListProjectsHandler

	// Inbox
	InboxClassifier  *inboxServices.Classifier
	CaptureHandler   *inboxCommands.CaptureHandler
	TriageHandler    *inboxCommands.TriageHandler
	ListInboxHandler *inboxQueries.ListItemsHandler

	// Focus
	StartFocusHandler *focusCommands.StartSessionHandler
	StopFocusHandler  *focusCommands.StopSessionHandler

	// Settings
	SettingsService *identitySettings.Service
}

// Options override container defaults, mostly for tests.
type Options struct {
	Clock     sharedDomain.Clock
	Metrics   observability.Metrics
	Publisher eventbus.Publisher
}

// NewContainer creates and wires all dependencies.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	return NewContainerWithOptions(ctx, cfg, logger, Options{})
}

// NewContainerWithOptions is NewContainer with explicit overrides.
func NewContainerWithOptions(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts Options) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Container{
		Config:  cfg,
		Logger:  logger,
		Clock:   opts.Clock,
		Metrics: opts.Metrics,
		Health:  observability.NewHealthRegistry(),
	}
	if c.Clock == nil {
		c.Clock = sharedDomain.SystemClock{}
	}
	if c.Metrics == nil {
		c.Metrics = observability.NoopMetrics{}
	}

	userID, err := uuid.Parse(cfg.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid FOCUSOS_USER_ID: %w", err)
	}
	c.UserID = userID

	c.Time, err = sharedDomain.NewTimeService(c.Clock, cfg.TimeZone)
	if err != nil {
		return nil, err
	}

	if err := c.openDatabase(ctx); err != nil {
		return nil, err
	}
	c.openScoreCache(ctx)
	if err := c.openPublisher(opts.Publisher); err != nil {
		c.Close()
		return nil, err
	}
	if err := c.buildSessions(); err != nil {
		c.Close()
		return nil, err
	}

	c.wireHandlers()
	return c, nil
}

func (c *Container) openDatabase(ctx context.Context) error {
	cfg := c.Config
	dbCfg := database.Config{
		URL:        cfg.DatabaseURL,
		SQLitePath: cfg.SQLitePath,
	}
	if cfg.UsesSQLite() {
		dbCfg.Driver = database.DriverSQLite
		if err := database.EnsureDirectory(cfg.SQLitePath); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	} else if cfg.DatabaseDriver != "" {
		dbCfg.Driver = database.Driver(cfg.DatabaseDriver)
	}

	conn, err := database.NewConnection(ctx, dbCfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}
	if err := migrations.Run(ctx, conn); err != nil {
		_ = conn.Close()
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	c.DB = conn
	c.UnitOfWork = database.NewUnitOfWork(conn)
	c.Repos = NewRepositoryFactory(conn).Build()
	c.Health.Register("database", observability.PingChecker(2*time.Second, conn.Ping))
	c.Logger.Info("connected to database", "driver", conn.Driver())
	return nil
}

// openScoreCache prefers Redis and falls back to the in-process cache.
func (c *Container) openScoreCache(ctx context.Context) {
	cfg := c.Config
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			c.Logger.Warn("invalid Redis URL, score cache will use in-memory fallback", "error", err)
		} else {
			client := redis.NewClient(opt)
			if err := client.Ping(ctx).Err(); err != nil {
				c.Logger.Warn("Redis not available, score cache will use in-memory fallback", "error", err)
				_ = client.Close()
			} else {
				c.RedisClient = client
				redisCfg := cache.DefaultRedisConfig()
				redisCfg.TTL = cfg.ScoreReuseTTL
				c.ScoreCache = cache.NewRedisCache(client, c.Clock, redisCfg, c.Logger)
				c.Health.Register("redis", observability.PingChecker(time.Second, func(ctx context.Context) error {
					return client.Ping(ctx).Err()
				}))
				c.Logger.Info("connected to Redis")
				return
			}
		}
	}
	c.ScoreCache = cache.NewMemoryCache(c.Clock, cfg.ScoreReuseTTL)
}

func (c *Container) openPublisher(override eventbus.Publisher) error {
	if override != nil {
		c.EventPublisher = override
		return nil
	}
	if c.Config.RabbitMQURL == "" {
		c.EventPublisher = eventbus.NewNoopPublisher(c.Logger)
		return nil
	}
	publisher, err := eventbus.NewRabbitMQPublisher(c.Config.RabbitMQURL, c.Logger)
	if err != nil {
		if !c.Config.IsProduction() {
			c.Logger.Warn("RabbitMQ not available, using noop publisher", "error", err)
			c.EventPublisher = eventbus.NewNoopPublisher(c.Logger)
			return nil
		}
		return err
	}
	c.EventPublisher = publisher
	return nil
}

func (c *Container) buildSessions() error {
	cfg := c.Config
	switch {
	case cfg.TestAuth:
		testUser, err := uuid.Parse(cfg.TestUserID)
		if err != nil {
			return fmt.Errorf("invalid TEST_USER_ID: %w", err)
		}
		c.Sessions = session.StaticResolver{UserID: testUser}
		c.Logger.Warn("TEST_AUTH enabled, every API request runs as one user", "user_id", testUser)
	case cfg.JWTSecret != "":
		resolver, err := session.NewJWTResolver(cfg.JWTSecret, "focusos", c.Clock)
		if err != nil {
			return err
		}
		c.Sessions = resolver
	default:
		c.Sessions = session.StaticResolver{}
	}
	return nil
}

func (c *Container) wireHandlers() {
	r := c.Repos
	c.Recorder = activity.NewEventRecorder(r.Activity, c.EventPublisher, c.Logger)

	c.CreateTaskHandler = commands.NewCreateTaskHandler(r.Tasks, r.Areas, c.Recorder, c.ScoreCache, c.UnitOfWork, c.Clock)
	c.UpdateTaskHandler = commands.NewUpdateTaskHandler(r.Tasks, c.Recorder, c.ScoreCache, c.UnitOfWork, c.Clock)
	c.CompleteTaskHandler = commands.NewCompleteTaskHandler(r.Tasks, c.Recorder, c.ScoreCache, c.UnitOfWork, c.Clock)
	c.SnoozeTaskHandler = commands.NewSnoozeTaskHandler(r.Tasks, c.Recorder, c.ScoreCache, c.UnitOfWork, c.Clock)
	c.SplitTaskHandler = commands.NewSplitTaskHandler(r.Tasks, c.Recorder, c.ScoreCache, c.UnitOfWork, c.Clock)
	c.AddDependencyHandler = commands.NewAddDependencyHandler(r.Tasks, c.Recorder, c.ScoreCache, c.UnitOfWork, c.Clock)
	c.CreateAreaHandler = commands.NewCreateAreaHandler(r.Areas, c.UnitOfWork, c.Clock)
	c.ListTasksHandler = queries.NewListTasksHandler(r.Tasks)
	c.GetTaskHandler = queries.NewGetTaskHandler(r.Tasks)
	c.ListAreasHandler = queries.NewListAreasHandler(r.Areas)

	c.Engine = services.NewEngine(services.DefaultEngineConfig())
	c.RecomputeHandler = scoringCommands.NewRecomputeHandler(
		r.Tasks, r.Areas, r.Runs, c.Engine, c.ScoreCache, c.UnitOfWork, c.Clock, c.Metrics)
	c.ListRunsHandler = scoringQueries.NewListRunsHandler(r.Tasks, r.Runs)

	c.SettingsService = identitySettings.NewService(r.Settings, c.Clock)

	c.GeneratePlanHandler = planningCommands.NewGeneratePlanHandler(
		r.Plans, c.RecomputeHandler, c.ScoreCache, r.Runs, r.Tasks, c.SettingsService, c.Recorder, c.UnitOfWork,
		c.Time, c.Config.ScoreReuseTTL)
	c.GetTodayPlanHandler = planningQueries.NewGetTodayPlanHandler(r.Plans, c.Time)

	c.CreateProjectHandler = projectCommands.NewCreateProjectHandler(r.Projects, r.Areas, c.Recorder, c.UnitOfWork, c.Clock)
	c.ListProjectsHandler = projectQueries.NewListProjectsHandler(r.Projects)

	c.InboxClassifier = inboxServices.NewClassifier()
	c.CaptureHandler = inboxCommands.NewCaptureHandler(r.Inbox, c.InboxClassifier, c.Recorder, c.UnitOfWork, c.Clock)
	c.TriageHandler = inboxCommands.NewTriageHandler(
		r.Inbox, c.CreateTaskHandler, c.CreateProjectHandler, c.Recorder, c.UnitOfWork, c.Clock)
	c.ListInboxHandler = inboxQueries.NewListItemsHandler(r.Inbox, c.InboxClassifier)

	c.StartFocusHandler = focusCommands.NewStartSessionHandler(r.Sessions, r.Tasks, c.Recorder, c.UnitOfWork, c.Clock)
	c.StopFocusHandler = focusCommands.NewStopSessionHandler(r.Sessions, c.Recorder, c.UnitOfWork, c.Clock)
}

// Close cleans up all resources.
func (c *Container) Close() {
	if c.EventPublisher != nil {
		if err := c.EventPublisher.Close(); err != nil {
			c.Logger.Warn("error closing event publisher", "error", err)
		}
	}
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Warn("error closing Redis connection", "error", err)
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			c.Logger.Warn("error closing database connection", "error", err)
		} else {
			c.Logger.Info("database connection closed")
		}
	}
}
