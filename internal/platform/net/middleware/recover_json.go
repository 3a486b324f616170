package middleware

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	perr "tgcheck/internal/platform/errors"
	"tgcheck/internal/platform/logger"
	pnet "tgcheck/internal/platform/net"
)

// RecoverJSON turns a panic into a 500 envelope; the panic value is logged, never sent
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			status, body := pnet.ErrorWire(perr.PanicErrf("panic recovered"), pnet.RequestID(r.Context()))
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(body)
		}()
		next.ServeHTTP(w, r)
	})
}
