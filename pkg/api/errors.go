package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized is returned when the API rejects the credentials.
	ErrUnauthorized = errors.New("unauthorized")
)

// Error is returned for non-2xx responses.
type Error struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int
	// Message is the error message sent by the API, if any.
	Message string
	// Variant is the error kind sent by the API, if any.
	Variant string
	// Endpoint is the endpoint that was requested.
	Endpoint string
}

// errorResponse is the JSON error body of the project API.
type errorResponse struct {
	Message string `json:"message"`
	Variant string `json:"variant,omitempty"`
}

var _ error = (*Error)(nil)

// Error implements error.
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s: %d %s", e.Endpoint, e.StatusCode, msg)
}

// Is reports whether the status code matches one of the sentinel errors.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	}
	return false
}
