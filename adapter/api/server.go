// Package api exposes FocusOS over HTTP.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/felixgeelhaar/focusos/internal/app"
	"github.com/felixgeelhaar/focusos/pkg/observability"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Server is the HTTP API server.
type Server struct {
	engine    *gin.Engine
	server    *http.Server
	logger    *slog.Logger
	container *app.Container
}

// ServerConfig holds configuration for the API server.
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	CORSOrigins  []string
}

// DefaultServerConfig returns the default server configuration.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:         "0.0.0.0:8080",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
		CORSOrigins:  []string{"http://localhost:3000"},
	}
}

// NewServer creates a new API server over the container's handlers.
func NewServer(cfg ServerConfig, container *app.Container, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), requestContext(), requestLogger(logger))
	if len(cfg.CORSOrigins) > 0 {
		engine.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"},
			AllowHeaders:     []string{"Authorization", "Content-Type", "X-Request-ID"},
			ExposeHeaders:    []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	s := &Server{
		engine:    engine,
		logger:    logger,
		container: container,
	}
	s.registerRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      engine,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return s
}

func (s *Server) registerRoutes() {
	s.engine.GET("/health", s.handleHealth)

	api := s.engine.Group("/api")
	api.Use(requireSession(s.container.Sessions))

	api.POST("/scoring/recompute", s.recompute)
	api.POST("/plans/generate", s.generatePlan)
	api.GET("/plans/today", s.todayPlan)

	api.GET("/tasks", s.listTasks)
	api.POST("/tasks", s.createTask)
	api.GET("/tasks/:id", s.getTask)
	api.PATCH("/tasks/:id", s.updateTask)
	api.POST("/tasks/:id/complete", s.completeTask)
	api.POST("/tasks/:id/snooze", s.snoozeTask)
	api.POST("/tasks/:id/split", s.splitTask)
	api.POST("/tasks/:id/dependencies", s.addDependency)
	api.GET("/tasks/:id/scores", s.scoreHistory)

	// Areas keep their original route name.
	api.GET("/domains", s.listAreas)
	api.POST("/domains", s.createArea)

	api.GET("/projects", s.listProjects)
	api.POST("/projects", s.createProject)

	api.GET("/inbox", s.listInbox)
	api.POST("/inbox", s.captureInbox)
	api.POST("/inbox/:id/triage", s.triageInbox)

	api.POST("/focus/start", s.startFocus)
	api.POST("/focus/stop", s.stopFocus)

	api.GET("/settings", s.getSettings)
	api.PUT("/settings", s.updateSettings)
}

func (s *Server) handleHealth(c *gin.Context) {
	results := s.container.Health.Check(c.Request.Context())
	overall := observability.Overall(results)
	status := http.StatusOK
	if overall != observability.HealthStatusHealthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{
		"status": overall,
		"checks": results,
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Handler returns the routed engine, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start starts the API server.
func (s *Server) Start() error {
	s.logger.Info("starting API server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")
	return s.server.Shutdown(ctx)
}
