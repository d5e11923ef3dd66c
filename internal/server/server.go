// Package server exposes the constructor regeneration over HTTP.
package server

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/toyz/ctorgen/internal/config"
	"github.com/toyz/ctorgen/internal/errors"
	"github.com/toyz/ctorgen/internal/refactoring"
)

// Server is the HTTP host of the refactoring
type Server struct {
	cfg        config.ServerConfig
	engine     *echo.Echo
	logger     *zap.Logger
	metrics    *Metrics
	refactorer *refactoring.Refactorer
}

// New creates a server with its routes registered
func New(cfg config.ServerConfig, logger *zap.Logger, metrics *Metrics, refactorer *refactoring.Refactorer) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.ReadTimeout
	e.Server.WriteTimeout = cfg.WriteTimeout

	s := &Server{
		cfg:        cfg,
		engine:     e,
		logger:     logger,
		metrics:    metrics,
		refactorer: refactorer,
	}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.Info("request",
				zap.String("request_id", v.RequestID),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			)
			return nil
		},
	}))

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", s.handleHealth)
	s.engine.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))

	v1 := s.engine.Group("/v1")
	v1.POST("/refactorings", s.handleRefactoring)
}

// Handler returns the server as an http.Handler
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start serves on the configured address until ctx is cancelled, then shuts
// down gracefully within the configured timeout
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", s.cfg.Addr))
		if err := s.engine.Start(s.cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.logger.Info("shutting down")
	return s.engine.Shutdown(shutdownCtx)
}
