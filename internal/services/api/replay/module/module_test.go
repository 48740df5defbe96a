package module

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	modkit "rdtlog/internal/modkit"
	"rdtlog/internal/modkit/httpkit"
	"rdtlog/internal/modkit/module"
	"rdtlog/internal/platform/config"
	phttp "rdtlog/internal/platform/net/http"
	"rdtlog/internal/services/api/replay/domain"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

func newModule(t *testing.T, opts ...modkit.Option) modkit.Module {
	t.Helper()
	deps := modkit.Deps{Cfg: config.New().Prefix("REPLAYMOD_TEST_")}
	o := FromConfig(deps)
	o.Registerer = prometheus.NewRegistry()
	return New(deps, o, opts...)
}

func TestModule_NameAndPorts(t *testing.T) {
	m := newModule(t)
	if m.Name() != "replay" {
		t.Fatalf("name = %q", m.Name())
	}
	svc := module.MustPortsOf[domain.ServicePort](m)
	if len(svc.Stations()) != 3 {
		t.Fatalf("stations = %+v", svc.Stations())
	}
}

func TestModule_MountRoutes(t *testing.T) {
	m := newModule(t, modkit.WithPrefix("/decode"), modkit.WithRegister(func(r httpkit.Router) {
		r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
	}))
	r := phttp.AdaptChi(chi.NewRouter())
	m.MountRoutes(r)

	rr := httptest.NewRecorder()
	r.Mux().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/decode/stations", nil))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"id":"dcf77"`) {
		t.Fatalf("stations: %d %s", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/decode?format=text", strings.NewReader(`{"station":"npl","log":"\n"}`))
	r.Mux().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK || !strings.HasSuffix(rr.Body.String(), "\n\n") {
		t.Fatalf("replay text: %d %q", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	r.Mux().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/decode/ping", nil))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("extra route: %d", rr.Code)
	}
}
