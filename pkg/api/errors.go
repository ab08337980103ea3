// Package api is the HTTP adapter for the mading REST API. Every network
// call in the application goes through a single Client configured with the
// API base URL and default headers.
package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated is returned when an operation requires a bearer
	// token and the session holds none. It short-circuits before any
	// network call is made.
	ErrUnauthenticated = errors.New("token not found, please log in")

	// ErrNotFound is returned when the API reports a missing resource.
	ErrNotFound = errors.New("resource not found")
)

// APIError is an application-level error reported by the server. Message
// carries the server-provided text verbatim and is safe to show as-is.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// TransportError wraps a failure where no server response was available,
// such as a connection refusal or a cancelled context. Callers fall back
// to a generic user-facing message for these.
type TransportError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Message extracts a user-facing message from err. Server-reported errors
// are shown verbatim; anything else collapses to fallback.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, ErrUnauthenticated) {
		return ErrUnauthenticated.Error()
	}
	return fallback
}
