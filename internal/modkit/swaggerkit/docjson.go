package swaggerkit

import (
	_ "embed"
	"net/http"

	perr "rdtlog/internal/platform/errors"
	phttp "rdtlog/internal/platform/net/http"

	"gopkg.in/yaml.v3"
)

//go:embed openapi.yaml
var embedded []byte

// SpecMutator lets modules tweak the parsed spec before it is served
type SpecMutator func(map[string]any)

var mutators []SpecMutator

// docSource is a seam so tests can serve a broken document
var docSource = func() []byte { return embedded }

// Register adds a spec mutator; call it from module init
func Register(m SpecMutator) {
	if m != nil {
		mutators = append(mutators, m)
	}
}

// Spec parses the embedded document and applies the standard and registered mutators
func Spec(baseURL string) (map[string]any, error) {
	var spec map[string]any
	if err := yaml.Unmarshal(docSource(), &spec); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnknown, "openapi document")
	}
	ensureServers(spec, baseURL)
	ensureErrorResponse(spec)
	addDefaultResponse(spec, "400", "Bad Request", map[string]any{
		"status_code": 400,
		"status":      "Bad Request",
		"error":       "station must be one of [dcf77 msf npl]",
		"field":       "station",
	})
	addDefaultResponse(spec, "500", "Internal Server Error", map[string]any{
		"status_code": 500,
		"status":      "Internal Server Error",
		"error":       "panic recovered",
	})
	for _, m := range mutators {
		m(spec)
	}
	return spec, nil
}

func serveDocJSON(baseURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		spec, err := Spec(baseURL)
		if err != nil {
			phttp.RespondError(w, r, err)
			return
		}
		w.Header().Set("Cache-Control", "no-store")
		phttp.JSON(w, http.StatusOK, spec)
	}
}

// ensureServers pins the document to OAS 3.0.3 since the UI cannot render 3.1
func ensureServers(spec map[string]any, url string) {
	delete(spec, "swagger")
	spec["openapi"] = "3.0.3"
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": url}}
	}
}

// ensureErrorResponse adds the error envelope model, mirroring the runtime wire
func ensureErrorResponse(spec map[string]any) {
	comps := child(spec, "components")
	schemas := child(comps, "schemas")
	if _, ok := schemas["ErrorResponse"]; ok {
		return
	}
	schemas["ErrorResponse"] = map[string]any{
		"type":        "object",
		"description": "Standard error response",
		"properties": map[string]any{
			"status_code": map[string]any{"type": "integer", "format": "int32"},
			"status":      map[string]any{"type": "string"},
			"code":        map[string]any{"type": "integer", "format": "int32"},
			"error":       map[string]any{"type": "string"},
			"field":       map[string]any{"type": "string"},
			"request_id":  map[string]any{"type": "string"},
		},
		"required": []any{"status_code", "status"},
	}
}

// addDefaultResponse gives every operation a code response unless it declares one
func addDefaultResponse(spec map[string]any, code, desc string, example map[string]any) {
	paths, ok := spec["paths"].(map[string]any)
	if !ok {
		return
	}
	resp := map[string]any{
		"description": desc,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema":  map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": example,
			},
		},
	}
	for _, p := range paths {
		node, ok := p.(map[string]any)
		if !ok {
			continue
		}
		for _, opAny := range node {
			op, ok := opAny.(map[string]any)
			if !ok {
				continue
			}
			responses := child(op, "responses")
			if _, exists := responses[code]; !exists {
				responses[code] = resp
			}
		}
	}
}

func child(m map[string]any, key string) map[string]any {
	c, ok := m[key].(map[string]any)
	if !ok {
		c = map[string]any{}
		m[key] = c
	}
	return c
}
