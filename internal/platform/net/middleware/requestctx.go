package middleware

import (
	"net/http"

	pnet "tgcheck/internal/platform/net"
)

// RequestContext copies the chi request id into the logger context and echoes it
// back as X-Request-ID. Mount after RequestID
func RequestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := pnet.RequestID(r.Context())
		if id != "" {
			w.Header().Set("X-Request-ID", id)
		}
		next.ServeHTTP(w, r.WithContext(pnet.WithRequest(r.Context(), id)))
	})
}
