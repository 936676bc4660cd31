package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/matryer/is"
	"github.com/pview-dev/pview/pkg/api"
	"github.com/pview-dev/pview/pkg/config"
	"github.com/pview-dev/pview/pkg/project"
	"github.com/pview-dev/pview/pkg/proto"
	"github.com/pview-dev/pview/pkg/snapshot"
)

const (
	upstream = "rad:git:hnrk"
	head     = "223aaf87d6ea62eef0014857640fd7c8dd0f80b5"
)

func setup(t *testing.T) (*httptest.Server, *api.Client) {
	t.Helper()
	store, err := snapshot.Load("../snapshot/testdata")
	if err != nil {
		t.Fatalf("load snapshots: %v", err)
	}

	cfg := config.DefaultConfig()
	ctx := context.Background()
	ctx = config.WithContext(ctx, cfg)
	ctx = log.WithContext(ctx, log.New(io.Discard))
	ctx = snapshot.WithContext(ctx, store)

	srv := httptest.NewServer(NewRouter(ctx))
	t.Cleanup(srv.Close)

	cfg.API.URL = srv.URL + APIPrefix
	c, err := api.NewClient(cfg)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	return srv, c
}

func TestInfo(t *testing.T) {
	is := is.New(t)
	_, c := setup(t)

	info, err := project.GetInfo(context.Background(), c, upstream)
	is.NoErr(err)
	is.Equal(info.Head, head)
	is.Equal(info.Meta.Name, "radicle-upstream")
}

func TestTree(t *testing.T) {
	is := is.New(t)
	_, c := setup(t)
	ctx := context.Background()

	root, err := project.GetTree(ctx, c, upstream, head, "/")
	is.NoErr(err)
	is.Equal(len(root.Entries), 3)
	is.Equal(root.Entries[0].Info.ObjectType, proto.ObjectTree)

	src, err := project.GetTree(ctx, c, upstream, snapshot.HeadCommit, "src")
	is.NoErr(err)
	is.Equal(src.Entries[0].Path, "src/main.ts")
}

func TestBlob(t *testing.T) {
	is := is.New(t)
	_, c := setup(t)
	ctx := context.Background()

	blob, err := project.GetBlob(ctx, c, upstream, head, "src/main.ts", project.BlobOptions{})
	is.NoErr(err)
	is.True(!blob.HTML)
	is.True(strings.HasPrefix(blob.Content, "const proxy"))

	hl, err := project.GetBlob(ctx, c, upstream, head, "src/main.ts", project.BlobOptions{Highlight: true})
	is.NoErr(err)
	is.True(hl.HTML)
	is.True(strings.Contains(hl.Content, "<pre"))
	is.True(strings.Contains(hl.Content, "startProxy"))
	is.Equal(hl.Path, blob.Path)

	logo, err := project.GetBlob(ctx, c, upstream, head, "logo.png", project.BlobOptions{Highlight: true})
	is.NoErr(err)
	is.True(logo.Binary)
	is.True(!logo.HTML)
}

func TestReadme(t *testing.T) {
	is := is.New(t)
	_, c := setup(t)

	readme, err := project.GetReadme(context.Background(), c, upstream, snapshot.HeadCommit)
	is.NoErr(err)
	is.Equal(readme.Path, "README.md")
	is.True(strings.HasPrefix(readme.Content, "# Upstream"))
}

func TestNotFound(t *testing.T) {
	is := is.New(t)
	_, c := setup(t)
	ctx := context.Background()

	_, err := project.GetInfo(ctx, c, "rad:git:missing")
	is.True(errors.Is(err, api.ErrNotFound))

	var apiErr *api.Error
	is.True(errors.As(err, &apiErr))
	is.Equal(apiErr.Variant, variantNotFound)
	is.True(strings.Contains(apiErr.Message, "project not found"))

	_, err = project.GetTree(ctx, c, upstream, "deadbeef", "")
	is.True(errors.Is(err, api.ErrNotFound))

	_, err = project.GetBlob(ctx, c, upstream, head, "nope.go", project.BlobOptions{})
	is.True(errors.Is(err, api.ErrNotFound))
}

func TestBadHighlight(t *testing.T) {
	is := is.New(t)
	srv, _ := setup(t)

	resp, err := http.Get(srv.URL + APIPrefix + "/projects/" + upstream + "/blob/head/src/main.ts?highlight=maybe")
	is.NoErr(err)
	defer resp.Body.Close() // nolint: errcheck
	is.Equal(resp.StatusCode, http.StatusBadRequest)

	var er errorResponse
	is.NoErr(json.NewDecoder(resp.Body).Decode(&er))
	is.Equal(er.Variant, variantBadRequest)
}

func TestProjects(t *testing.T) {
	is := is.New(t)
	_, c := setup(t)

	var projects []proto.Project
	is.NoErr(c.Get(context.Background(), "projects", nil, &projects))
	is.Equal(len(projects), 1)
	is.Equal(projects[0].ID, upstream)
	is.Equal(projects[0].Anchor.StateHash, "b5b1e7f0c4f5e8d0c3a4b7f6a9d3b2c1e0f9a8b7")
}

func TestHealth(t *testing.T) {
	is := is.New(t)
	srv, _ := setup(t)

	for _, path := range []string{"/livez", "/readyz"} {
		resp, err := http.Get(srv.URL + path)
		is.NoErr(err)
		resp.Body.Close() // nolint: errcheck
		is.Equal(resp.StatusCode, http.StatusOK)
	}

	resp, err := http.Get(srv.URL + "/nope")
	is.NoErr(err)
	resp.Body.Close() // nolint: errcheck
	is.Equal(resp.StatusCode, http.StatusNotFound)
}

func TestReadinessWithoutStore(t *testing.T) {
	is := is.New(t)
	ctx := log.WithContext(context.Background(), log.New(io.Discard))
	srv := httptest.NewServer(NewRouter(ctx))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/readyz")
	is.NoErr(err)
	resp.Body.Close() // nolint: errcheck
	is.Equal(resp.StatusCode, http.StatusServiceUnavailable)
}

func TestNewServer(t *testing.T) {
	is := is.New(t)

	_, err := NewServer(context.Background(), snapshot.New())
	is.True(errors.Is(err, config.ErrNilConfig))

	cfg := config.DefaultConfig()
	ctx := config.WithContext(context.Background(), cfg)
	s, err := NewServer(ctx, snapshot.New())
	is.NoErr(err)
	is.Equal(s.Server.Addr, cfg.HTTP.ListenAddr)
	is.NoErr(s.Close())
}

func TestRequestID(t *testing.T) {
	is := is.New(t)
	srv, _ := setup(t)

	resp, err := http.Get(srv.URL + "/livez")
	is.NoErr(err)
	resp.Body.Close() // nolint: errcheck
	is.True(resp.Header.Get(RequestIDHeader) != "")

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/livez", nil)
	is.NoErr(err)
	req.Header.Set(RequestIDHeader, "req-1")
	resp, err = http.DefaultClient.Do(req)
	is.NoErr(err)
	resp.Body.Close() // nolint: errcheck
	is.Equal(resp.Header.Get(RequestIDHeader), "req-1")
}
