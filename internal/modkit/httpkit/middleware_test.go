package httpkit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"rdtlog/internal/platform/config"
)

func applyStack(h http.Handler, stack []func(http.Handler) http.Handler) http.Handler {
	for i := len(stack) - 1; i >= 0; i-- {
		h = stack[i](h)
	}
	return h
}

func TestCommonStack_ReachesHandler(t *testing.T) {
	hit := 0
	final := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hit++
		w.WriteHeader(http.StatusNoContent)
	})
	root := applyStack(final, CommonStack(config.New().Prefix("HTTPKIT_TEST_")))

	rr := httptest.NewRecorder()
	root.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if hit != 1 || rr.Code != http.StatusNoContent {
		t.Fatalf("hit=%d code=%d", hit, rr.Code)
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatalf("request id header missing")
	}
}

func TestCommonStack_RecoversPanics(t *testing.T) {
	root := applyStack(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("decoder blew up")
	}), CommonStack(config.New().Prefix("HTTPKIT_TEST_")))

	rr := httptest.NewRecorder()
	root.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("want 500, got %d", rr.Code)
	}
}

func TestCommonStack_CORSFromConfig(t *testing.T) {
	t.Setenv("HTTPKIT_CORS_ORIGINS", "https://ops.example")
	root := applyStack(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}), CommonStack(config.New().Prefix("HTTPKIT_")))

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://ops.example")
	rr := httptest.NewRecorder()
	root.ServeHTTP(rr, req)
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://ops.example" {
		t.Fatalf("allow-origin = %q", got)
	}
}
