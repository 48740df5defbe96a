// Package http writes responses in the standard JSON envelope, or as plain
// text report lines, and adapts chi to a small Router surface
package http

import (
	"encoding/json"
	stdhttp "net/http"
	"strings"

	pnet "rdtlog/internal/platform/net"
)

// Envelope is the standard response body for all JSON endpoints
type Envelope = pnet.Wire

// Lines is a handler result written as text/plain, one line per entry
type Lines []string

// JSON writes v as application/json with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Text writes each line followed by a newline
func Text(w stdhttp.ResponseWriter, status int, lines []string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	_, _ = w.Write([]byte(b.String()))
}

// RespondOK writes a 200 envelope with data
func RespondOK(w stdhttp.ResponseWriter, r *stdhttp.Request, data any) {
	JSON(w, stdhttp.StatusOK, envelopeOf(stdhttp.StatusOK, data, r))
}

// RespondError maps a project error into an envelope and writes it
func RespondError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	status, body := pnet.Error(err, pnet.RequestID(r.Context()))
	JSON(w, status, body)
}

func envelopeOf(status int, data any, r *stdhttp.Request) Envelope {
	_, body := pnet.Reply(status, data, pnet.RequestID(r.Context()))
	return body
}

// Response is a functional response object for return-style handlers
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header
}

// Handle adapts a Response-returning handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}
	if status == stdhttp.StatusNoContent {
		w.WriteHeader(stdhttp.StatusNoContent)
		return
	}

	switch body := resp.Body.(type) {
	case error:
		if body != nil {
			RespondError(w, r, body)
			return
		}
	case Lines:
		Text(w, status, body)
		return
	}
	JSON(w, status, envelopeOf(status, resp.Body, r))
}

// OK returns a 200 response
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Error returns a response that maps the error to status and envelope
func Error(err error) Response { return Response{Body: err} }
