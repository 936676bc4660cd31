package web

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pview-dev/pview/pkg/snapshot"
)

// HealthController registers the health check routes for the web server.
func HealthController(_ context.Context, r *mux.Router) {
	r.HandleFunc("/livez", getLiveness)
	r.HandleFunc("/readyz", getReadiness)
}

func getLiveness(w http.ResponseWriter, _ *http.Request) {
	renderStatus(http.StatusOK)(w, nil)
}

// getReadiness reports ready once a snapshot store is attached.
func getReadiness(w http.ResponseWriter, r *http.Request) {
	if snapshot.FromContext(r.Context()) == nil {
		renderStatus(http.StatusServiceUnavailable)(w, nil)
		return
	}

	renderStatus(http.StatusOK)(w, nil)
}
