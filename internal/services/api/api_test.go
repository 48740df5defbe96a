package api

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"rdtlog/internal/core/logtest"
	"rdtlog/internal/platform/config"
	phttp "rdtlog/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

func newAPI(t *testing.T, opt Options) http.Handler {
	t.Helper()
	opt.Config = config.New().Prefix("APITEST_")
	opt.Metrics = prometheus.NewRegistry()
	r := phttp.AdaptChi(chi.NewRouter())
	reg := Mount(r, opt)
	names := reg.Names()
	sort.Strings(names)
	if strings.Join(names, ",") != "meta,replay" {
		t.Fatalf("registered modules = %v", names)
	}
	return r.Mux()
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestMount_Routes(t *testing.T) {
	h := newAPI(t, Options{EnableMetrics: true, EnableSwagger: true})

	tests := []struct {
		path string
		want int
	}{
		{"/api/v1/meta/health", http.StatusOK},
		{"/api/v1/meta/ready", http.StatusOK},
		{"/api/v1/replay/stations", http.StatusOK},
		{"/docs/doc.json", http.StatusOK},
		{"/debug/pprof/", http.StatusNotFound},
		{"/api/v2/meta/health", http.StatusNotFound},
	}
	for _, tc := range tests {
		if rr := get(h, tc.path); rr.Code != tc.want {
			t.Fatalf("GET %s = %d, want %d", tc.path, rr.Code, tc.want)
		}
	}
}

func TestMount_ReplayFeedsMetrics(t *testing.T) {
	h := newAPI(t, Options{EnableMetrics: true})

	sat := logtest.Minute{Year: 24, Month: 6, Day: 15, Weekday: 6, Hour: 10, Minute: 41}
	body := `{"station":"dcf77","log":"` + logtest.DCF77(sat) + `\n"}`
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/replay", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "24-06-15 Saturday 10:41") {
		t.Fatalf("replay: %d %s", rr.Code, rr.Body.String())
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatalf("common stack not applied")
	}

	m := get(h, "/metrics")
	if m.Code != http.StatusOK || !strings.Contains(m.Body.String(), `rdtlog_replays_total{outcome="ok",station="dcf77"} 1`) {
		t.Fatalf("metrics: %d %s", m.Code, m.Body.String())
	}
}

func TestMount_MetricsDisabled(t *testing.T) {
	h := newAPI(t, Options{})
	if rr := get(h, "/metrics"); rr.Code != http.StatusNotFound {
		t.Fatalf("metrics should be off, got %d", rr.Code)
	}
}
