package httpkit

import (
	"net/http"
	"testing"
)

type routeRec struct {
	verb string
	path string
	h    http.HandlerFunc
}

// fakeRouter records registrations; Route and Group hand back itself
type fakeRouter struct {
	prefixes  []string
	useCalls  int
	lastMWLen int
	recs      []routeRec
}

func (f *fakeRouter) Get(p string, h Handler)  { f.Method(http.MethodGet, p, h) }
func (f *fakeRouter) Post(p string, h Handler) { f.Method(http.MethodPost, p, h) }
func (f *fakeRouter) Method(m, p string, h Handler) {
	f.recs = append(f.recs, routeRec{verb: m, path: p, h: h})
}
func (f *fakeRouter) Handle(p string, h http.Handler) {
	f.recs = append(f.recs, routeRec{verb: "HANDLE", path: p, h: h.ServeHTTP})
}
func (f *fakeRouter) Use(mw ...func(http.Handler) http.Handler) {
	f.useCalls++
	f.lastMWLen = len(mw)
}
func (f *fakeRouter) Group(fn func(Router)) { fn(f) }
func (f *fakeRouter) Route(p string, fn func(Router)) {
	f.prefixes = append(f.prefixes, p)
	fn(f)
}
func (f *fakeRouter) Mux() http.Handler { return http.NewServeMux() }

func TestMountUnder(t *testing.T) {
	noop := func(next http.Handler) http.Handler { return next }
	tests := []struct {
		name     string
		mw       []func(http.Handler) http.Handler
		wantUse  int
		wantMWLn int
	}{
		{"with middleware", []func(http.Handler) http.Handler{noop, noop}, 1, 2},
		{"without middleware", nil, 0, 0},
	}
	for _, tc := range tests {
		root := &fakeRouter{}
		MountUnder(root, "/replay", tc.mw, func(sub Router) {
			Get(sub, "/stations", func(*http.Request) (any, error) { return nil, nil })
		})

		if len(root.prefixes) != 1 || root.prefixes[0] != "/replay" {
			t.Fatalf("%s: prefixes = %v", tc.name, root.prefixes)
		}
		if root.useCalls != tc.wantUse || root.lastMWLen != tc.wantMWLn {
			t.Fatalf("%s: use=%d len=%d", tc.name, root.useCalls, root.lastMWLen)
		}
		if len(root.recs) != 1 || root.recs[0].verb != http.MethodGet || root.recs[0].path != "/stations" {
			t.Fatalf("%s: recs = %+v", tc.name, root.recs)
		}
	}
}
