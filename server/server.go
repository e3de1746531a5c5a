// Package server hosts the HTTP server and wires the API services.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/praka2hb/synergi/internal/profile"
	apiv1 "github.com/praka2hb/synergi/server/router/api/v1"
	"github.com/praka2hb/synergi/store"
)

type Server struct {
	Profile *profile.Profile
	Store   *store.Store

	echoServer *echo.Echo
	apiService *apiv1.APIV1Service
}

// NewServer creates the HTTP server and mounts all routes.
func NewServer(ctx context.Context, profile *profile.Profile, st *store.Store, apiService *apiv1.APIV1Service) (*Server, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
	}))
	e.Use(requestLogger())

	s := &Server{
		Profile:    profile,
		Store:      st,
		echoServer: e,
		apiService: apiService,
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": profile.Version,
		})
	})

	apiService.Register(e.Group("/api/v1"))

	return s, nil
}

// Start begins serving and blocks until the listener fails.
func (s *Server) Start(ctx context.Context) error {
	address := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	slog.Info("server started",
		"address", address,
		"mode", s.Profile.Mode,
		"driver", s.Profile.Driver)
	if err := s.echoServer.Start(address); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "failed to start server")
	}
	return nil
}

// Shutdown drains connections and closes the store.
func (s *Server) Shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := s.echoServer.Shutdown(ctx); err != nil {
		slog.Error("failed to shut down server", "error", err.Error())
	}
	if err := s.Store.Close(); err != nil {
		slog.Error("failed to close store", "error", err.Error())
	}
	slog.Info("server stopped")
}

// requestLogger logs one line per request with latency.
func requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			slog.Info("http request",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				"latency_ms", time.Since(start).Milliseconds())
			return err
		}
	}
}
