package middleware

import (
	"net/http"

	pnet "tgcheck/internal/platform/net"
)

// AuthPort resolves the API caller from a request
type AuthPort interface {
	// Parse returns the operator name or an error
	Parse(r *http.Request) (operator string, err error)
}

// Auth is a no-op when p is nil. Failures are written through write
func Auth(p AuthPort, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			op, err := p.Parse(r)
			if err != nil {
				status, body := pnet.ErrorWire(err, pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			next.ServeHTTP(w, r.WithContext(pnet.WithOperator(r.Context(), op)))
		})
	}
}
