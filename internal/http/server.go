// Package http provides the HTTP API for pagesmith.
package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/pagesmith/internal/credential"
	"github.com/fyrsmithlabs/pagesmith/internal/events"
	"github.com/fyrsmithlabs/pagesmith/internal/generation"
	"github.com/fyrsmithlabs/pagesmith/internal/orchestrator"
	"github.com/fyrsmithlabs/pagesmith/internal/template"
	"github.com/fyrsmithlabs/pagesmith/internal/version"
)

// Server provides the HTTP endpoints for pagesmith.
type Server struct {
	echo    *echo.Echo
	svc     orchestrator.Service
	catalog *template.Catalog
	creds   *credential.Registry
	store   version.Store
	bus     *events.Bus
	logger  *zap.Logger
	config  *Config
}

// Config holds HTTP server configuration.
type Config struct {
	Host    string
	Port    int
	Version string
}

// Deps carries the collaborators the server exposes.
type Deps struct {
	Service     orchestrator.Service
	Catalog     *template.Catalog
	Credentials *credential.Registry
	Store       version.Store
	Bus         *events.Bus
}

// NewServer creates a new HTTP server.
func NewServer(deps Deps, logger *zap.Logger, cfg *Config) (*Server, error) {
	if deps.Service == nil {
		return nil, fmt.Errorf("orchestrator service cannot be nil")
	}
	if deps.Catalog == nil {
		return nil, fmt.Errorf("template catalog cannot be nil")
	}
	if deps.Credentials == nil {
		return nil, fmt.Errorf("credential registry cannot be nil")
	}
	if deps.Store == nil {
		return nil, fmt.Errorf("version store cannot be nil")
	}
	if deps.Bus == nil {
		return nil, fmt.Errorf("event bus cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required for request tracking and debugging")
	}
	if cfg == nil {
		cfg = &Config{
			Host: "localhost",
			Port: 8090,
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(NewHTTPMetrics(logger).MetricsMiddleware())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start)

			logger.Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", duration),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)

			return err
		}
	})

	s := &Server{
		echo:    e,
		svc:     deps.Service,
		catalog: deps.Catalog,
		creds:   deps.Credentials,
		store:   deps.Store,
		bus:     deps.Bus,
		logger:  logger,
		config:  cfg,
	}

	// Register routes
	s.registerRoutes()

	return s, nil
}

// registerRoutes sets up the HTTP endpoints.
func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.echo.GET("/events/stream", s.handleEventStream)

	v1 := s.echo.Group("/api/v1")
	v1.POST("/generate", s.handleGenerate)

	v1.GET("/templates", s.handleListTemplates)
	v1.GET("/templates/:id", s.handleGetTemplate)
	v1.POST("/templates/:id/apply", s.handleApplyTemplate)

	v1.GET("/artifacts/:artifactID/snapshots", s.handleListSnapshots)
	v1.GET("/artifacts/:artifactID/snapshots/:snapshotID", s.handleGetSnapshot)

	v1.GET("/credentials", s.handleListCredentials)
	v1.POST("/credentials/inject", s.handleInjectCredentials)
}

// handleHealth returns a simple health check response.
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: s.config.Version,
	})
}

// handleGenerate runs the generation pipeline.
func (s *Server) handleGenerate(c echo.Context) error {
	var req orchestrator.Request
	if err := c.Bind(&req); err != nil {
		s.logger.Warn("invalid generate request", zap.Error(err))
		return badRequest(c, "invalid request body")
	}

	resp, err := s.svc.Generate(c.Request().Context(), &req)
	if err != nil {
		return s.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// handleListTemplates returns the catalog metadata without content.
func (s *Server) handleListTemplates(c echo.Context) error {
	templates := s.catalog.List()
	return c.JSON(http.StatusOK, TemplateListResponse{
		Templates: templates,
		Count:     len(templates),
	})
}

// handleGetTemplate returns a single template, content included.
func (s *Server) handleGetTemplate(c echo.Context) error {
	tpl := s.catalog.Get(c.Param("id"))
	if tpl == nil {
		return notFound(c, "template not found")
	}
	return c.JSON(http.StatusOK, tpl)
}

// handleApplyTemplate serves a template and records it as a snapshot.
func (s *Server) handleApplyTemplate(c echo.Context) error {
	resp, err := s.svc.ApplyTemplate(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// handleListSnapshots returns an artifact's history without content.
func (s *Server) handleListSnapshots(c echo.Context) error {
	artifactID := c.Param("artifactID")
	snapshots := s.store.List(c.Request().Context(), artifactID)
	return c.JSON(http.StatusOK, SnapshotListResponse{
		ArtifactID: artifactID,
		Snapshots:  snapshots,
		Count:      len(snapshots),
	})
}

// handleGetSnapshot returns a snapshot with content, reactivating it.
func (s *Server) handleGetSnapshot(c echo.Context) error {
	snap, err := s.store.Get(c.Request().Context(),
		c.Param("artifactID"), c.Param("snapshotID"))
	if err != nil {
		return s.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, snap)
}

// handleListCredentials returns the supported credential requirements.
func (s *Server) handleListCredentials(c echo.Context) error {
	reqs := s.creds.Requirements()
	return c.JSON(http.StatusOK, CredentialListResponse{
		Credentials: reqs,
		Count:       len(reqs),
	})
}

// handleInjectCredentials patches API keys into a document.
func (s *Server) handleInjectCredentials(c echo.Context) error {
	var req orchestrator.InjectRequest
	if err := c.Bind(&req); err != nil {
		s.logger.Warn("invalid inject request", zap.Error(err))
		return badRequest(c, "invalid request body")
	}

	resp, err := s.svc.InjectCredentials(c.Request().Context(), &req)
	if err != nil {
		return s.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// errorResponse maps pipeline errors onto stable HTTP statuses. Domain
// sentinels map directly; everything else goes through the generation
// classifier.
func (s *Server) errorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, orchestrator.ErrMissingPrompt),
		errors.Is(err, orchestrator.ErrMissingContent):
		return badRequest(c, err.Error())
	case errors.Is(err, orchestrator.ErrTemplateNotFound),
		errors.Is(err, version.ErrNotFound):
		return notFound(c, err.Error())
	}

	info := generation.Classify(err)
	s.logger.Error("request failed",
		zap.Int("status", info.Status),
		zap.String("error", info.Error),
		zap.Error(err),
	)
	return c.JSON(info.Status, info)
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, generation.ErrorInfo{
		Status:  http.StatusBadRequest,
		Error:   "Bad request",
		Message: msg,
	})
}

func notFound(c echo.Context, msg string) error {
	return c.JSON(http.StatusNotFound, generation.ErrorInfo{
		Status:  http.StatusNotFound,
		Error:   "Not found",
		Message: msg,
	})
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.logger.Info("starting http server", zap.String("addr", addr))
	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.echo.Shutdown(ctx)
}
