// Package serve runs the project API server and the stats server.
package serve

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pview-dev/pview/pkg/config"
	"github.com/pview-dev/pview/pkg/snapshot"
	"github.com/pview-dev/pview/pkg/stats"
	"github.com/pview-dev/pview/pkg/web"
	"golang.org/x/sync/errgroup"
)

// Server is the pview snapshot server.
type Server struct {
	HTTPServer  *web.Server
	StatsServer *stats.StatsServer
	Config      *config.Config
	Store       *snapshot.Store

	logger *log.Logger
	ctx    context.Context
}

// NewServer returns a new *Server serving the given store.
// It expects a context with *log.Logger and *config.Config attached.
func NewServer(ctx context.Context, store *snapshot.Store) (*Server, error) {
	var err error
	cfg := config.FromContext(ctx)
	if cfg == nil {
		return nil, config.ErrNilConfig
	}

	ctx = snapshot.WithContext(ctx, store)
	srv := &Server{
		Config: cfg,
		Store:  store,
		logger: log.FromContext(ctx).WithPrefix("server"),
		ctx:    ctx,
	}

	srv.HTTPServer, err = web.NewServer(ctx, store)
	if err != nil {
		return nil, fmt.Errorf("create http server: %w", err)
	}

	srv.StatsServer, err = stats.NewStatsServer(ctx)
	if err != nil {
		return nil, fmt.Errorf("create stats server: %w", err)
	}

	return srv, nil
}

// Start starts the HTTP and stats servers. When one fails, the other is
// closed.
func (s *Server) Start() error {
	errg, _ := errgroup.WithContext(s.ctx)
	errg.Go(func() error {
		s.logger.Print("Starting HTTP server", "addr", s.Config.HTTP.ListenAddr, "projects", s.Store.Len())
		if err := s.HTTPServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			s.StatsServer.Close() // nolint: errcheck
			return err
		}
		return nil
	})
	errg.Go(func() error {
		s.logger.Print("Starting Stats server", "addr", s.Config.Stats.ListenAddr)
		if err := s.StatsServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			s.HTTPServer.Close() // nolint: errcheck
			return err
		}
		return nil
	})
	return errg.Wait()
}

// ShutdownTimeout bounds the graceful shutdown in Run.
const ShutdownTimeout = 30 * time.Second

// Run starts the servers and shuts them down gracefully once ctx is done.
// It returns early with the error of a server that fails to start.
func (s *Server) Run(ctx context.Context) error {
	lch := make(chan error, 1)
	go func() {
		lch <- s.Start()
	}()

	select {
	case err := <-lch:
		s.Close() // nolint: errcheck
		return err
	case <-ctx.Done():
	}

	sctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := s.Shutdown(sctx); err != nil {
		return err
	}

	// wait for serve to finish
	return <-lch
}

// Shutdown lets the server gracefully shutdown.
func (s *Server) Shutdown(ctx context.Context) error {
	errg, ctx := errgroup.WithContext(ctx)
	errg.Go(func() error {
		return s.HTTPServer.Shutdown(ctx)
	})
	errg.Go(func() error {
		return s.StatsServer.Shutdown(ctx)
	})
	return errg.Wait()
}

// Close closes the server.
func (s *Server) Close() error {
	var errg errgroup.Group
	errg.Go(s.HTTPServer.Close)
	errg.Go(s.StatsServer.Close)
	return errg.Wait()
}
