// Package httpkit provides the routing and handler helpers modules mount against
// modules import this instead of internal/platform/net/http
package httpkit

import (
	"net/http"
	"strings"

	phttp "tgcheck/internal/platform/net/http"
)

type (
	// Envelope is the JSON body every API endpoint returns
	Envelope = phttp.Envelope

	// Router is the platform router seam
	Router = phttp.Router
)

// Get mounts a body-less handler under GET; the result is wrapped in an envelope
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, call(h))
}

// Post mounts a body-less handler under POST
func Post(r Router, path string, h func(*http.Request) (any, error)) {
	r.Post(path, call(h))
}

// PostJSON mounts a handler whose body is decoded and validated into T
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.JSONHandler(h))
}

type withStatus struct {
	code int
	body any
}

// Status makes a handler result go out with code instead of 200
func Status(code int, body any) any { return withStatus{code: code, body: body} }

func call(fn func(*http.Request) (any, error)) http.HandlerFunc {
	return phttp.Handle(func(r *http.Request) phttp.Response {
		out, err := fn(r)
		if err != nil {
			return phttp.Error(err)
		}
		if ws, ok := out.(withStatus); ok {
			return phttp.Response{Status: ws.code, Body: ws.body}
		}
		return phttp.OK(out)
	})
}

// MountAPI mounts routes under /api/{version} with optional scope middleware
func MountAPI(r Router, version string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route("/api/"+strings.TrimPrefix(version, "/"), func(api Router) {
		if len(mw) > 0 {
			api.Use(mw...)
		}
		mount(api)
	})
}

// MountAPIV1 is MountAPI for v1
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	MountAPI(r, "v1", mw, mount)
}
