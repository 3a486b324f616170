package httpkit

import (
	"net/http"

	phttp "tgcheck/internal/platform/net/http"
	"tgcheck/internal/platform/net/middleware"
)

// Protected groups routes behind bearer auth. A nil port leaves the group open
func Protected(r Router, p middleware.AuthPort, fn func(Router)) {
	r.Group(func(gr Router) {
		gr.Use(Auth(p))
		fn(gr)
	})
}

// Auth writes rejections through the platform JSON writer
func Auth(p middleware.AuthPort) func(http.Handler) http.Handler {
	return middleware.Auth(p, phttp.JSON)
}
