//go:build swag

package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"postpilot/internal/platform/config"
	perr "postpilot/internal/platform/errors"

	docs "postpilot/internal/services/api/docs"
)

var docReader = func() string { return docs.SwaggerInfo.ReadDoc() }

// serveDocJSON serves the generated spec patched for the bundled UI:
// openapi 3.0.3, the /api/v1 server, and the error envelope on every operation
func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var spec map[string]any
		if err := json.Unmarshal([]byte(docReader()), &spec); err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}
		delete(spec, "swagger")
		spec["openapi"] = "3.0.3"
		if _, ok := spec["servers"]; !ok {
			spec["servers"] = []any{map[string]any{"url": "/api/v1"}}
		}
		if v := config.New().Prefix("CORE_API_").MayString("DOCS_TITLE_SUFFIX", ""); v != "" {
			info := child(spec, "info")
			title, _ := info["title"].(string)
			info["title"] = strings.TrimSpace(title + " " + v)
		}

		child(child(spec, "components"), "schemas")["ErrorResponse"] = envelopeSchema
		defaultResponse(spec, http.StatusBadRequest, perr.ErrorCodeValidation, "niche is required")
		defaultResponse(spec, http.StatusUnauthorized, perr.ErrorCodeUnauthorized, "missing linkedin credentials")
		defaultResponse(spec, http.StatusInternalServerError, perr.ErrorCodePanic, "panic recovered")

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

// child returns m[key] as an object, creating it when missing
func child(m map[string]any, key string) map[string]any {
	c, ok := m[key].(map[string]any)
	if !ok {
		c = map[string]any{}
		m[key] = c
	}
	return c
}

func prop(typ string) map[string]any { return map[string]any{"type": typ} }

var envelopeSchema = map[string]any{
	"type":     "object",
	"required": []any{"status_code", "status"},
	"properties": map[string]any{
		"status_code": prop("integer"),
		"status":      prop("string"),
		"code":        prop("integer"),
		"error":       prop("string"),
		"field":       prop("string"),
		"request_id":  prop("string"),
	},
}

// defaultResponse documents status on each operation that has not
func defaultResponse(spec map[string]any, status int, code perr.ErrorCode, msg string) {
	key, text := strconv.Itoa(status), http.StatusText(status)
	resp := map[string]any{
		"description": text,
		"content": map[string]any{"application/json": map[string]any{
			"schema":  map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
			"example": map[string]any{"status_code": status, "status": text, "code": int(code), "error": msg},
		}},
	}
	for _, item := range child(spec, "paths") {
		ops, _ := item.(map[string]any)
		for _, op := range ops {
			if o, ok := op.(map[string]any); ok {
				if rs := child(o, "responses"); rs[key] == nil {
					rs[key] = resp
				}
			}
		}
	}
}
