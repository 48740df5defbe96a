package http

import (
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func header(k string) func(stdhttp.Handler) stdhttp.Handler {
	return func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
			w.Header().Set(k, "1")
			next.ServeHTTP(w, req)
		})
	}
}

func text(code int, body string) Handler {
	return func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
		w.WriteHeader(code)
		_, _ = w.Write([]byte(body))
	}
}

func serve(r Router, method, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	r.Mux().ServeHTTP(rr, httptest.NewRequest(method, path, nil))
	return rr
}

func TestAdaptChi_MiddlewareScopes(t *testing.T) {
	t.Parallel()

	r := AdaptChi(chi.NewRouter())
	r.Use(header("X-Root"))
	r.Get("/root", text(200, "root"))

	r.Group(func(gr Router) {
		gr.Use(header("X-Group"))
		if gr.Mux() == nil {
			t.Fatalf("group Mux() returned nil")
		}
		gr.Get("/g/ping", text(200, "g"))
	})

	r.Route("/api", func(sr Router) {
		sr.Use(header("X-Route"))
		sr.Get("/ping", text(200, "pong"))
	})

	tests := []struct {
		path, body string
		want, deny []string
	}{
		{"/root", "root", []string{"X-Root"}, []string{"X-Group", "X-Route"}},
		{"/g/ping", "g", []string{"X-Root", "X-Group"}, []string{"X-Route"}},
		{"/api/ping", "pong", []string{"X-Root", "X-Route"}, []string{"X-Group"}},
	}
	for _, tc := range tests {
		rr := serve(r, stdhttp.MethodGet, tc.path)
		if rr.Code != 200 || rr.Body.String() != tc.body {
			t.Fatalf("GET %s => code=%d body=%q", tc.path, rr.Code, rr.Body.String())
		}
		for _, h := range tc.want {
			if rr.Header().Get(h) != "1" {
				t.Fatalf("GET %s: %s missing", tc.path, h)
			}
		}
		for _, h := range tc.deny {
			if rr.Header().Get(h) != "" {
				t.Fatalf("GET %s: %s leaked", tc.path, h)
			}
		}
	}
}

func TestAdaptChi_MethodHandleAndNesting(t *testing.T) {
	t.Parallel()

	r := AdaptChi(chi.NewRouter())
	r.Method(stdhttp.MethodHead, "/h", func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
		w.Header().Set("X-Head", "1")
	})
	r.Handle("/std", stdhttp.HandlerFunc(text(200, "std")))
	r.Route("/api", func(sr Router) {
		sr.Post("/replay", text(201, ""))
		sr.Route("/v1", func(nr Router) {
			nr.Group(func(gr Router) { gr.Get("/ok", text(200, "v1ok")) })
		})
	})

	if rr := serve(r, stdhttp.MethodHead, "/h"); rr.Code != 200 || rr.Header().Get("X-Head") != "1" {
		t.Fatalf("HEAD /h => code=%d", rr.Code)
	}
	if rr := serve(r, stdhttp.MethodGet, "/std"); rr.Body.String() != "std" {
		t.Fatalf("GET /std => %q", rr.Body.String())
	}
	if rr := serve(r, stdhttp.MethodPost, "/api/replay"); rr.Code != 201 {
		t.Fatalf("POST /api/replay => %d", rr.Code)
	}
	if rr := serve(r, stdhttp.MethodGet, "/api/replay"); rr.Code != stdhttp.StatusMethodNotAllowed {
		t.Fatalf("GET /api/replay => %d, want 405", rr.Code)
	}
	if rr := serve(r, stdhttp.MethodGet, "/api/v1/ok"); rr.Code != 200 || rr.Body.String() != "v1ok" {
		t.Fatalf("GET /api/v1/ok => code=%d body=%q", rr.Code, rr.Body.String())
	}
}
