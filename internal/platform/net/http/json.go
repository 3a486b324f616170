package http

import (
	"net/http"

	"tgcheck/internal/platform/net/http/bind"
)

// JSONHandler decodes and validates T before calling fn; the result is wrapped with OK
func JSONHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return Error(err)
		}
		out, err := fn(r, in)
		if err != nil {
			return Error(err)
		}
		return OK(out)
	})
}
