package web

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
)

// Error variants sent in error bodies.
const (
	variantNotFound   = "NOT_FOUND"
	variantBadRequest = "BAD_REQUEST"
	variantInternal   = "INTERNAL"
	variantNotAllowed = "METHOD_NOT_ALLOWED"
)

// errorResponse is the JSON body of an error response.
type errorResponse struct {
	Message string `json:"message"`
	Variant string `json:"variant"`
}

func renderStatus(code int) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(code)
		io.WriteString(w, fmt.Sprintf("%d %s", code, http.StatusText(code))) //nolint:errcheck,gosec
	}
}

// renderJSON encodes v before writing the status so an encoding failure
// becomes a 500.
func renderJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	bts, err := json.Marshal(v)
	if err != nil {
		log.Error("error encoding json", "err", err)
		statusCode = http.StatusInternalServerError
		bts, _ = json.Marshal(errorResponse{ // nolint: errcheck
			Message: err.Error(),
			Variant: variantInternal,
		})
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	w.Write(append(bts, '\n')) // nolint: errcheck
}

func renderError(w http.ResponseWriter, statusCode int, variant string, err error) {
	renderJSON(w, statusCode, errorResponse{
		Message: err.Error(),
		Variant: variant,
	})
}

func renderNotFound(w http.ResponseWriter, _ *http.Request) {
	renderJSON(w, http.StatusNotFound, errorResponse{
		Message: http.StatusText(http.StatusNotFound),
		Variant: variantNotFound,
	})
}

func renderMethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	renderJSON(w, http.StatusMethodNotAllowed, errorResponse{
		Message: http.StatusText(http.StatusMethodNotAllowed),
		Variant: variantNotAllowed,
	})
}
