// Package server exposes a board store over a JSON HTTP API.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/existflow/ironboard/internal/config"
	"github.com/existflow/ironboard/internal/logger"
	"github.com/existflow/ironboard/internal/storage"
	"github.com/existflow/ironboard/internal/store"
)

// maxActionSize bounds the body of POST /api/v1/actions
const maxActionSize = 1 << 20

// Server is the board API server
type Server struct {
	store *store.Store
	kv    storage.KV
	echo  *echo.Echo
	now   func() time.Time
}

// New opens the configured storage, loads the state and sets up routes
func New(cfg *config.Config) (*Server, error) {
	kv, err := storage.Open(cfg.StorageOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	st := store.New(storage.NewRepository(kv))
	if err := st.Hydrate(); err != nil {
		_ = kv.Close()
		return nil, fmt.Errorf("failed to load data: %w", err)
	}

	s := NewWithStore(st)
	s.kv = kv
	return s, nil
}

// NewWithStore serves an already loaded store
func NewWithStore(st *store.Store) *Server {
	s := &Server{
		store: st,
		now:   time.Now,
	}
	s.setupEcho()
	return s
}

func (s *Server) setupEcho() {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = sonicSerializer{}
	e.HTTPErrorHandler = errorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestLogger)
	e.Use(middleware.CORS())

	// Health check
	e.GET("/health", s.handleHealth)

	// API v1
	api := e.Group("/api/v1")
	api.GET("/state", s.handleState)
	api.POST("/actions", s.handleAction, middleware.BodyLimit("1M"))
	api.GET("/boards", s.handleBoards)
	api.GET("/boards/:id/columns", s.handleBoardColumns)
	api.GET("/columns/:id/tasks", s.handleColumnTasks)
	api.GET("/summary", s.handleSummary)

	s.echo = e
}

// Close closes the storage backend, if the server opened one
func (s *Server) Close() error {
	if s.kv == nil {
		return nil
	}
	return s.kv.Close()
}

// Router returns the HTTP handler
func (s *Server) Router() http.Handler {
	return s.echo
}

// Start starts the server
func (s *Server) Start(addr string) error {
	logger.Info("Server listening", logger.F("addr", addr))
	return s.echo.Start(addr)
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
