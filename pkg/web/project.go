package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/pview-dev/pview/pkg/proto"
	"github.com/pview-dev/pview/pkg/snapshot"
	"github.com/pview-dev/pview/pkg/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HighlightStyle is the chroma style used to render highlighted blobs.
const HighlightStyle = "github"

var projectRequestCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "pview",
	Subsystem: "http",
	Name:      "project_requests_total",
	Help:      "The total number of project API requests",
}, []string{"route", "code"})

// ProjectRoute is a route of the project API.
type ProjectRoute struct {
	name    string
	path    string
	handler func(*snapshot.Store, *http.Request) (any, error)
}

// projectRoutes returns the project API routes. Highlighted blobs are
// cached in hl.
func projectRoutes(hl *highlightCache) []ProjectRoute {
	return []ProjectRoute{
		{
			name:    "projects",
			path:    "/projects",
			handler: getProjects,
		},
		{
			name:    "info",
			path:    "/projects/{id}",
			handler: getInfo,
		},
		{
			name:    "tree",
			path:    "/projects/{id}/tree/{commit}",
			handler: getTree,
		},
		{
			name:    "tree",
			path:    "/projects/{id}/tree/{commit}/{path:.*}",
			handler: getTree,
		},
		{
			name:    "blob",
			path:    "/projects/{id}/blob/{commit}/{path:.*}",
			handler: getBlob(hl),
		},
		{
			name:    "readme",
			path:    "/projects/{id}/readme/{commit}",
			handler: getReadme,
		},
	}
}

// ProjectController registers the project API routes.
func ProjectController(_ context.Context, r *mux.Router) {
	hl := newHighlightCache(DefaultHighlightCacheSize)
	for _, route := range projectRoutes(hl) {
		r.Handle(route.path, withStore(route)).Methods(http.MethodGet)
	}
}

// withStore resolves the snapshot store and renders the handler result.
func withStore(route ProjectRoute) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.FromContext(r.Context())
		store := snapshot.FromContext(r.Context())
		if store == nil {
			renderError(w, http.StatusServiceUnavailable, variantInternal, errors.New("no snapshots loaded"))
			projectRequestCounter.WithLabelValues(route.name, strconv.Itoa(http.StatusServiceUnavailable)).Inc()
			return
		}

		v, err := route.handler(store, r)
		code := http.StatusOK
		switch {
		case err == nil:
			renderJSON(w, code, v)
		case errors.Is(err, snapshot.ErrProjectNotFound),
			errors.Is(err, snapshot.ErrCommitNotFound),
			errors.Is(err, snapshot.ErrFileNotFound):
			code = http.StatusNotFound
			renderError(w, code, variantNotFound, err)
		case errors.Is(err, errBadRequest):
			code = http.StatusBadRequest
			renderError(w, code, variantBadRequest, err)
		default:
			code = http.StatusInternalServerError
			logger.Error("project request", "route", route.name, "err", err)
			renderError(w, code, variantInternal, err)
		}

		projectRequestCounter.WithLabelValues(route.name, strconv.Itoa(code)).Inc()
	})
}

var errBadRequest = errors.New("bad request")

func getProjects(s *snapshot.Store, _ *http.Request) (any, error) {
	return s.Projects(), nil
}

func getInfo(s *snapshot.Store, r *http.Request) (any, error) {
	return s.Info(mux.Vars(r)["id"])
}

func getTree(s *snapshot.Store, r *http.Request) (any, error) {
	vars := mux.Vars(r)
	return s.Tree(vars["id"], vars["commit"], vars["path"])
}

func getBlob(cache *highlightCache) func(*snapshot.Store, *http.Request) (any, error) {
	return func(s *snapshot.Store, r *http.Request) (any, error) {
		vars := mux.Vars(r)
		hl := false
		if v := r.URL.Query().Get("highlight"); v != "" {
			var err error
			hl, err = strconv.ParseBool(v)
			if err != nil {
				return nil, fmt.Errorf("%w: highlight: %q", errBadRequest, v)
			}
		}

		key := highlightKey{
			id:     vars["id"],
			commit: vars["commit"],
			path:   utils.SanitizePath(vars["path"]),
		}
		if hl {
			if blob, ok := cache.Get(key); ok {
				return blob, nil
			}
		}

		blob, err := s.Blob(key.id, key.commit, key.path)
		if err != nil {
			return nil, err
		}

		if !hl {
			return blob, nil
		}

		hb, err := highlightBlob(blob)
		if err != nil {
			return nil, err
		}

		cache.Set(key, hb)
		return hb, nil
	}
}

func getReadme(s *snapshot.Store, r *http.Request) (any, error) {
	vars := mux.Vars(r)
	return s.Readme(vars["id"], vars["commit"])
}

// highlightBlob returns a copy of the blob with its content rendered as
// highlighted HTML. Binary and HTML blobs are returned as is.
func highlightBlob(blob *proto.Blob) (*proto.Blob, error) {
	if blob.Binary || blob.HTML {
		return blob, nil
	}

	content, err := highlight(blob.Path, blob.Content)
	if err != nil {
		return nil, err
	}

	hb := *blob
	hb.Content = content
	hb.HTML = true
	return &hb, nil
}

func highlight(path, content string) (string, error) {
	lexer := lexers.Match(path)
	if lexer == nil {
		lexer = lexers.Analyse(content)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}

	it, err := chroma.Coalesce(lexer).Tokenise(nil, content)
	if err != nil {
		return "", err
	}

	style := styles.Get(HighlightStyle)
	var b strings.Builder
	if err := html.New().Format(&b, style, it); err != nil {
		return "", err
	}

	return b.String(), nil
}
