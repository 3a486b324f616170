package http

import (
	"bytes"
	"html/template"
	stdhttp "net/http"

	"tgcheck/internal/platform/logger"
)

// HTML executes the named template into a buffer and writes it with status.
// A template failure becomes a plain 500 so half rendered pages never reach the client
func HTML(w stdhttp.ResponseWriter, r *stdhttp.Request, status int, t *template.Template, name string, data any) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		logger.C(r.Context()).Error().Err(err).Str("template", name).Msg("render failed")
		stdhttp.Error(w, stdhttp.StatusText(stdhttp.StatusInternalServerError), stdhttp.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
