// Package server exposes the flow engines over HTTP.
//
// Traces are kept in a bounded in-process Store and can be replayed record by
// record through the steps endpoint. Every body is wrapped in APIResponse.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/rs/zerolog"

	"github.com/katalvlaran/flowtrace/internal/config"
)

// Server is the HTTP trace service.
type Server struct {
	cfg        config.ServerConfig
	handler    *Handler
	router     *gin.Engine
	httpServer *http.Server
	log        zerolog.Logger
}

// New builds the service from a validated configuration.
func New(cfg *config.Config, log zerolog.Logger, version string) *Server {
	log = log.With().Str("component", "server").Logger()
	h := &Handler{
		store:      NewStore(cfg.Server.MaxStored),
		algorithm:  cfg.Algorithm(),
		flowOpts:   cfg.FlowOptions(log),
		duplicates: cfg.DuplicatePolicy(),
		version:    version,
		startTime:  time.Now(),
		log:        log,
	}
	s := &Server{cfg: cfg.Server, handler: h, log: log}
	s.router = s.setupRouter()

	return s
}

func (s *Server) setupRouter() *gin.Engine {
	gin.SetMode(s.cfg.Mode)
	// Network documents reject unknown fields, as network.Decode does.
	binding.EnableDecoderDisallowUnknownFields = true

	router := gin.New()
	router.Use(Recovery(s.log))
	router.Use(Logger(s.log))
	router.Use(BodyLimit(s.cfg.MaxBodyBytes))

	router.GET("/healthz", s.handler.Health)

	v1 := router.Group("/api/v1")
	{
		traces := v1.Group("/traces")
		{
			traces.POST("", s.handler.CreateTrace)
			traces.GET("/:id", s.handler.GetTrace)
			traces.GET("/:id/steps/:index", s.handler.GetStep)
		}

		v1.POST("/compare", s.handler.Compare)

		presets := v1.Group("/presets")
		{
			presets.GET("", s.handler.ListPresets)
			presets.GET("/:name", s.handler.GetPreset)
		}
	}

	return router
}

// Handler returns the router, e.g. for httptest.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves on the configured address until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.cfg.Addr).Msg("listening")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server: listen: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.log.Info().Msg("shutting down")
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}

	return nil
}
