package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

type dto struct {
	N int `json:"n"`
}

func TestSugar_JSONVerbs(t *testing.T) {
	t.Parallel()

	r := AdaptChi(chi.NewRouter())

	GetJSON(r, "/g", func(_ *http.Request) (any, error) {
		return map[string]string{"ok": "get"}, nil
	})
	PostJSON(r, "/p", func(_ *http.Request, in dto) (any, error) {
		return map[string]int{"d": in.N * 2}, nil
	})

	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
		rr := httptest.NewRecorder()
		r.Mux().ServeHTTP(rr, req)
		return rr
	}

	rr := do(http.MethodGet, "/g", ``)
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"ok":"get"`) {
		t.Fatalf("GET /g => code=%d body=%q", rr.Code, rr.Body.String())
	}

	rr = do(http.MethodPost, "/p", `{"n":7}`)
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"d":14`) {
		t.Fatalf("POST /p => code=%d body=%q", rr.Code, rr.Body.String())
	}

	rr = do(http.MethodPost, "/p", `{`)
	if rr.Code == http.StatusOK {
		t.Fatalf("POST /p with bad json should not be 200; got %d", rr.Code)
	}

	rr = do(http.MethodPut, "/p", `{"n":1}`)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("PUT /p => %d, want 405", rr.Code)
	}
}
