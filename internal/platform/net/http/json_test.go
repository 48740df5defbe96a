package http

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"rdtlog/internal/platform/net/http/bind"
)

type inDTO struct {
	N int `json:"n"`
}

func TestJSONHandler_Success(t *testing.T) {
	t.Parallel()

	h := JSONHandler(func(_ *http.Request, in inDTO) (any, error) {
		return map[string]int{"doubled": in.N * 2}, nil
	})

	req := httptest.NewRequest(http.MethodPost, "/x", bytes.NewBufferString(`{"n":7}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	h(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"doubled":14`) {
		t.Fatalf("body %q missing doubled result", rr.Body.String())
	}
}

func TestJSONHandler_BindError(t *testing.T) {
	t.Parallel()

	h := JSONHandler(func(_ *http.Request, _ inDTO) (any, error) {
		t.Fatal("handler should not be called on bind error")
		return nil, nil
	})

	req := httptest.NewRequest(http.MethodPost, "/x", bytes.NewBufferString(`{`))
	rr := httptest.NewRecorder()
	h(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on bind error, got %d", rr.Code)
	}
	if !strings.Contains(strings.ToLower(rr.Body.String()), "invalid json") {
		t.Fatalf("expected error text in body, got %q", rr.Body.String())
	}
}

func TestJSONHandler_Options(t *testing.T) {
	t.Parallel()

	h := JSONHandler(func(_ *http.Request, in inDTO) (any, error) { return in, nil },
		bind.JSONOptions{MaxBytes: 4, DisallowUnknown: true})

	rr := httptest.NewRecorder()
	h(rr, httptest.NewRequest(http.MethodPost, "/x", bytes.NewBufferString(`{"n":12345}`)))
	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestJSONHandler_HandlerError(t *testing.T) {
	t.Parallel()

	h := JSONHandler(func(_ *http.Request, _ inDTO) (any, error) {
		return nil, errors.New("boom")
	})

	rr := httptest.NewRecorder()
	h(rr, httptest.NewRequest(http.MethodPost, "/x", bytes.NewBufferString(`{"n":1}`)))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 on handler error, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "boom") {
		t.Fatalf("expected error message in body, got %q", rr.Body.String())
	}
}

func TestJSONHandlerNoBody(t *testing.T) {
	t.Parallel()

	h := JSONHandlerNoBody(func(_ *http.Request) (any, error) { return []string{"dcf77"}, nil })
	rr := httptest.NewRecorder()
	h(rr, httptest.NewRequest(http.MethodGet, "/s", nil))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"data":["dcf77"]`) {
		t.Fatalf("code=%d body=%q", rr.Code, rr.Body.String())
	}
}

func TestJSONHandlerNoBody_ResponsePassthrough(t *testing.T) {
	t.Parallel()

	h := JSONHandlerNoBody(func(_ *http.Request) (any, error) {
		return Response{Status: http.StatusOK, Body: Lines{"Minute jumped"}}, nil
	})
	rr := httptest.NewRecorder()
	h(rr, httptest.NewRequest(http.MethodGet, "/s", nil))
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("content-type = %q", ct)
	}
	if rr.Body.String() != "Minute jumped\n" {
		t.Fatalf("body = %q", rr.Body.String())
	}
}
