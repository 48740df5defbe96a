// Package swaggerkit serves the OpenAPI document and the Swagger UI
package swaggerkit

import (
	"net/http"
	"strings"

	phttp "rdtlog/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Mount serves the UI under prefix (e.g. "/docs") and the document at
// prefix+"/doc.json" when enabled. baseURL is the API root the UI calls
func Mount(r phttp.Router, prefix, baseURL string, enabled bool) {
	if !enabled {
		return
	}
	prefix = "/" + strings.Trim(prefix, "/")
	r.Get(prefix, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, prefix+"/index.html", http.StatusPermanentRedirect)
	})
	r.Get(prefix+"/doc.json", serveDocJSON(baseURL))
	r.Handle(prefix+"/*", httpSwagger.Handler(
		httpSwagger.URL(prefix+"/doc.json"),
	))
}
