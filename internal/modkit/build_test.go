package modkit

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"rdtlog/internal/modkit/httpkit"
	phttp "rdtlog/internal/platform/net/http"
	kit "rdtlog/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

func TestBuild_Defaults(t *testing.T) {
	t.Parallel()

	b := Build()
	if b.Name != "" || b.Prefix != "" || len(b.Mw) != 0 {
		t.Fatalf("unexpected defaults: %+v", b)
	}
	kit.MustNotPanic(t, func() { b.Register(nil) })
}

func TestBuild_WithOptionsAndCopySemantics(t *testing.T) {
	t.Parallel()

	fnPtr := func(f func(http.Handler) http.Handler) uintptr { return reflect.ValueOf(f).Pointer() }
	mwA := func(next http.Handler) http.Handler { return next }
	mwB := func(next http.Handler) http.Handler { return next }
	mid := []func(http.Handler) http.Handler{mwA}

	regCalled := 0
	b := Build(
		WithName("replay"),
		WithPrefix("/replay"),
		WithMiddlewares(mid...),
		WithMiddlewares(mwB),
		WithRegister(func(httpkit.Router) { regCalled++ }),
	)

	if b.Name != "replay" || b.Prefix != "/replay" {
		t.Fatalf("name/prefix = %q %q", b.Name, b.Prefix)
	}
	if len(b.Mw) != 2 || fnPtr(b.Mw[0]) != fnPtr(mwA) || fnPtr(b.Mw[1]) != fnPtr(mwB) {
		t.Fatalf("Mw contents not preserved in order")
	}

	mid[0] = mwB
	if fnPtr(b.Mw[0]) != fnPtr(mwA) {
		t.Fatalf("Built.Mw changed after source slice mutation")
	}

	b.Register(nil)
	if regCalled != 1 {
		t.Fatalf("register hook called %d times", regCalled)
	}
}

func TestBuilt_Mount(t *testing.T) {
	t.Parallel()

	tag := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Module", "replay")
			next.ServeHTTP(w, r)
		})
	}
	b := Build(
		WithPrefix("replay/"),
		WithMiddlewares(tag),
		WithRegister(func(r httpkit.Router) {
			r.Get("/extra", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("extra")) })
		}),
	)

	r := phttp.AdaptChi(chi.NewRouter())
	b.Mount(r, func(sub httpkit.Router) {
		sub.Get("/stations", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("own")) })
	})

	for path, want := range map[string]string{"/replay/stations": "own", "/replay/extra": "extra"} {
		rr := httptest.NewRecorder()
		r.Mux().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Body.String() != want || rr.Header().Get("X-Module") != "replay" {
			t.Fatalf("GET %s => %q (X-Module=%q)", path, rr.Body.String(), rr.Header().Get("X-Module"))
		}
	}

	kit.MustPanic(t, func() { Build().Mount(r, nil) })
}
