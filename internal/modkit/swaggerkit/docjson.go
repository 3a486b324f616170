//go:build swag

package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	perr "tgcheck/internal/platform/errors"

	docs "tgcheck/internal/services/api/docs"
)

// docReader is swapped in tests
var docReader = func() string { return docs.SwaggerInfo.ReadDoc() }

// commonErrors are attached to every operation that does not document them itself.
// Examples come from the same table the runtime envelope uses
var commonErrors = []perr.ErrorCode{
	perr.ErrorCodeValidation,
	perr.ErrorCodeUnauthorized,
	perr.ErrorCodeTooManyRequests,
	perr.ErrorCodeUnknown,
	perr.ErrorCodeUnavailable,
}

func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var spec map[string]any
		if err := json.Unmarshal([]byte(docReader()), &spec); err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}
		normalize(spec, "/api/v1")
		decorate(spec)

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

// normalize pins the document to OAS 3.0.3, which the bundled UI renders, and adds servers
func normalize(spec map[string]any, base string) {
	delete(spec, "swagger")
	if v, _ := spec["openapi"].(string); !strings.HasPrefix(v, "3.0") {
		spec["openapi"] = "3.0.3"
	}
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": base}}
	}
}

// decorate adds the envelope schema and fills in the shared error responses
func decorate(spec map[string]any) {
	schemas := child(child(spec, "components"), "schemas")
	if _, ok := schemas["Envelope"]; !ok {
		schemas["Envelope"] = envelopeSchema()
	}

	paths, _ := spec["paths"].(map[string]any)
	for _, p := range paths {
		ops, _ := p.(map[string]any)
		for _, o := range ops {
			op, ok := o.(map[string]any)
			if !ok {
				continue
			}
			resps := child(op, "responses")
			for _, c := range commonErrors {
				status := strconv.Itoa(perr.HTTPStatusCode(c))
				if _, ok := resps[status]; !ok {
					resps[status] = errorResponse(c)
				}
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

func envelopeSchema() map[string]any {
	prop := func(typ string) map[string]any { return map[string]any{"type": typ} }
	return map[string]any{
		"type":        "object",
		"description": "Every JSON response: data on success, code and a public error message on failure",
		"properties": map[string]any{
			"status_code": prop("integer"),
			"status":      prop("string"),
			"code":        prop("integer"),
			"error":       prop("string"),
			"request_id":  prop("string"),
			"data":        prop("object"),
		},
		"required": []any{"status_code", "status"},
	}
}

func errorResponse(c perr.ErrorCode) map[string]any {
	status := perr.HTTPStatusCode(c)
	return map[string]any{
		"description": http.StatusText(status),
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/Envelope"},
				"example": map[string]any{
					"status_code": status,
					"status":      http.StatusText(status),
					"code":        c,
					"error":       perr.PublicMessage(c),
					"request_id":  "tgcheck/abc-000001",
				},
			},
		},
	}
}
