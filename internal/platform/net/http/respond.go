// Package http holds the router seam, the JSON envelope and the HTML writer
package http

import (
	"encoding/json"
	stdhttp "net/http"

	pnet "tgcheck/internal/platform/net"
)

// Envelope is the body every JSON endpoint returns
type Envelope = pnet.Wire

// JSON writes v as application/json with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// RespondError writes err as an envelope. Only the public message for its code leaves the process
func RespondError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	status, body := pnet.ErrorWire(err, pnet.RequestID(r.Context()))
	JSON(w, status, body)
}

// Response is returned by return-style handlers; an error Body becomes an error envelope
type Response struct {
	Status int
	Body   any
}

// Handle adapts a Response-returning handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		resp := h(r)
		if err, ok := resp.Body.(error); ok && err != nil {
			RespondError(w, r, err)
			return
		}
		status := resp.Status
		if status == 0 {
			status = stdhttp.StatusOK
		}
		JSON(w, status, pnet.DataWire(status, resp.Body, pnet.RequestID(r.Context())))
	}
}

// OK returns a 200 response
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Error returns a response that maps err to status and envelope
func Error(err error) Response { return Response{Body: err} }
