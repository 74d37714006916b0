package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brickfield/sitecast/internal/config"
	"github.com/brickfield/sitecast/internal/infrastructure/monitoring/logging"
)

// Server wraps the HTTP server with graceful shutdown.
type Server struct {
	srv    *http.Server
	cfg    config.ServerConfig
	logger logging.Logger
}

// NewServer builds a Server around a router.
func NewServer(cfg config.ServerConfig, router *gin.Engine, log logging.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		cfg:    cfg,
		logger: log.Named("server"),
	}
}

// Start serves until Shutdown; it returns nil on clean shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server listening", logging.String("addr", s.srv.Addr))
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests within the configured timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
	defer cancel()
	s.logger.Info("http server shutting down")
	return s.srv.Shutdown(ctx)
}
