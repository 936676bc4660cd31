package web

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pview-dev/pview/pkg/config"
	"github.com/pview-dev/pview/pkg/snapshot"
)

// Server is the project API HTTP server.
type Server struct {
	ctx context.Context
	cfg *config.Config

	Server *http.Server
}

// NewServer creates a new project API server serving the given store.
func NewServer(ctx context.Context, store *snapshot.Store) (*Server, error) {
	cfg := config.FromContext(ctx)
	if cfg == nil {
		return nil, config.ErrNilConfig
	}

	logger := log.FromContext(ctx)
	ctx = snapshot.WithContext(ctx, store)
	s := &Server{
		ctx: ctx,
		cfg: cfg,
		Server: &http.Server{
			Addr:              cfg.HTTP.ListenAddr,
			Handler:           NewRouter(ctx),
			ReadHeaderTimeout: time.Second * 10,
			IdleTimeout:       time.Second * 10,
			MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
			ErrorLog:          logger.StandardLog(log.StandardLogOptions{ForceLevel: log.ErrorLevel}),
		},
	}

	return s, nil
}

// Close closes the HTTP server.
func (s *Server) Close() error {
	return s.Server.Close()
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.Server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.Server.Shutdown(ctx)
}
