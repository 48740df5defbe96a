// Package httpkit re-exports the platform http helpers modules need so they
// do not import internal/platform/net/http directly
package httpkit

import (
	"net/http"

	phttp "rdtlog/internal/platform/net/http"
	"rdtlog/internal/platform/net/http/bind"
)

type (
	// Envelope is the JSON transport envelope
	Envelope = phttp.Envelope

	// Lines is a plain text body, one line per element
	Lines = phttp.Lines

	// Response is the return-style handler result
	Response = phttp.Response

	// Handler is the platform handler type
	Handler = phttp.Handler

	// Router is the platform router seam
	Router = phttp.Router

	// JSONOptions tunes request body parsing
	JSONOptions = bind.JSONOptions
)

// OK returns a 200 response
func OK(data any) Response { return phttp.OK(data) }

// Text returns a 200 text/plain response
func Text(lines []string) Response { return Response{Status: http.StatusOK, Body: Lines(lines)} }

// Error maps err to a status and error envelope
func Error(err error) Response { return phttp.Error(err) }

// DefaultJSONOptions returns the platform body parsing defaults
func DefaultJSONOptions() JSONOptions { return bind.DefaultJSONOptions() }

// JSON decodes and validates T before calling fn
func JSON[T any](fn func(*http.Request, T) (any, error), opts ...JSONOptions) Handler {
	return phttp.JSONHandler(fn, opts...)
}

// Call adapts a handler that takes no body
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.JSONHandlerNoBody(fn)
}

// Handle adapts a Response-returning function directly
func Handle(fn func(*http.Request) Response) Handler {
	return phttp.Handle(fn)
}
