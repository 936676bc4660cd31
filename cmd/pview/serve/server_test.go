package serve

import (
	"context"
	"errors"
	"io"
	"net"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/matryer/is"
	"github.com/pview-dev/pview/pkg/config"
	"github.com/pview-dev/pview/pkg/snapshot"
)

func TestStartShutdown(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	cfg.HTTP.ListenAddr = "127.0.0.1:0"
	cfg.Stats.ListenAddr = "127.0.0.1:0"

	ctx := config.WithContext(context.Background(), cfg)
	ctx = log.WithContext(ctx, log.New(io.Discard))
	s, err := NewServer(ctx, snapshot.New())
	is.NoErr(err)

	done := make(chan error, 1)
	go func() {
		done <- s.Start()
	}()

	time.Sleep(50 * time.Millisecond)
	sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	is.NoErr(s.Shutdown(sctx))

	select {
	case err := <-done:
		is.NoErr(err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestNewServerWithoutConfig(t *testing.T) {
	is := is.New(t)
	_, err := NewServer(context.Background(), snapshot.New())
	is.True(errors.Is(err, config.ErrNilConfig))
}

func newTestServer(t *testing.T, httpAddr string) *Server {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.HTTP.ListenAddr = httpAddr
	cfg.Stats.ListenAddr = "127.0.0.1:0"

	ctx := config.WithContext(context.Background(), cfg)
	ctx = log.WithContext(ctx, log.New(io.Discard))
	s, err := NewServer(ctx, snapshot.New())
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return s
}

func TestRunStopsOnCancel(t *testing.T) {
	is := is.New(t)
	s := newTestServer(t, "127.0.0.1:0")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		is.NoErr(err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRunReturnsStartError(t *testing.T) {
	is := is.New(t)
	l, err := net.Listen("tcp", "127.0.0.1:0")
	is.NoErr(err)
	defer l.Close() // nolint: errcheck

	s := newTestServer(t, l.Addr().String())
	done := make(chan error, 1)
	go func() {
		done <- s.Run(context.Background())
	}()

	select {
	case err := <-done:
		is.True(err != nil)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return the listen error")
	}
}
