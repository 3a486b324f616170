// Package middleware wraps chi and go-chi/cors middleware and adds the in house ones
package middleware

import (
	"net/http"

	pstrings "tgcheck/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// RequestID attaches or propagates X-Request-ID and stores it on context
func RequestID() func(http.Handler) http.Handler { return chimw.RequestID }

// RealIP trusts X-Forwarded-For and X-Real-IP for the remote address
func RealIP() func(http.Handler) http.Handler { return chimw.RealIP }

// NoCache marks every response as uncacheable; session and results pages must never be reused
func NoCache() func(http.Handler) http.Handler { return chimw.NoCache }

// Compress gzips or deflates text responses at level
func Compress(level int) func(http.Handler) http.Handler {
	return chimw.Compress(level, "application/json", "text/html", "text/plain", "text/csv")
}

// StripSlashes drops a trailing slash before routing
func StripSlashes() func(http.Handler) http.Handler { return chimw.StripSlashes }

// Heartbeat answers path with 200 before any routing
func Heartbeat(path string) func(http.Handler) http.Handler { return chimw.Heartbeat(path) }

// CORSOptions is a narrow surface over go-chi/cors
type CORSOptions struct {
	AllowedOrigins []string
	AllowedHeaders []string
	MaxAge         int
}

// CORS allows GET and POST from AllowedOrigins, the only verbs the API serves
func CORS(o CORSOptions) func(http.Handler) http.Handler {
	return chicors.Handler(chicors.Options{
		AllowedOrigins: o.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: pstrings.IfEmpty(o.AllowedHeaders, []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"}),
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         o.MaxAge,
	})
}
