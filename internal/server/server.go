package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/alkime/maffie/internal/config"
	"github.com/alkime/maffie/internal/document"
	"github.com/alkime/maffie/internal/eventloop"
	"github.com/alkime/maffie/pkg/channels"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

// Server represents the HTTP host of a document.
type Server struct {
	config *config.Config
	logger *slog.Logger
	router *gin.Engine
	doc    *document.Document
	loop   *eventloop.Loop
	feed   *channels.Hub[document.Change]
}

// New creates a new Server for doc. Every document access is funnelled
// through loop. New registers a document observer, so it must be called
// before loop starts running.
func New(
	cfg *config.Config,
	logger *slog.Logger,
	doc *document.Document,
	loop *eventloop.Loop,
) (*Server, error) {
	// Set Gin mode based on environment
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	// Configure proxy trust for production (Fly.io)
	if cfg.Env == config.EnvProduction {
		router.TrustedPlatform = gin.PlatformFlyIO
		logger.Debug("Configured trusted platform", "platform", "fly.io")
	}

	server := &Server{
		config: cfg,
		logger: logger,
		router: router,
		doc:    doc,
		loop:   loop,
		feed:   channels.NewHub[document.Change](),
	}

	doc.Observe(func(c document.Change) {
		if dropped := server.feed.Publish(c); dropped > 0 {
			logger.Debug("change feed subscribers lagging", "dropped", dropped)
		}
	})

	setupSecurityMiddleware(router, cfg, logger)

	if err := setupAssets(router); err != nil {
		return nil, err
	}

	server.setupRoutes()

	return server, nil
}

// Router exposes the HTTP handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.config.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errC := make(chan error, 1)
	go func() {
		s.logger.Info("Server listening", "port", s.config.Port)
		errC <- srv.ListenAndServe()
	}()

	select {
	case err := <-errC:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	// close the change feed first so streaming handlers return
	s.feed.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	if err := <-errC; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}

	return nil
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/", s.handleIndex)

	api := s.router.Group("/api/v1")
	{
		api.GET("/widgets", s.handleListWidgets)
		api.GET("/widgets/:id", s.handleGetWidget)
		api.PUT("/widgets/:id/inputs/:index", s.handleSetInput)
		api.GET("/events", s.handleEvents)
	}
}
