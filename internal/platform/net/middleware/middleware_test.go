package middleware_test

import (
	"compress/flate"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	perr "tgcheck/internal/platform/errors"
	"tgcheck/internal/platform/metrics"
	pnet "tgcheck/internal/platform/net"
	"tgcheck/internal/platform/net/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type portFunc func(*http.Request) (string, error)

func (f portFunc) Parse(r *http.Request) (string, error) { return f(r) }

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestAuth(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = pnet.Operator(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	cases := []struct {
		name   string
		port   middleware.AuthPort
		status int
		op     string
	}{
		{name: "nil port is open", port: nil, status: 204},
		{name: "accepted", port: portFunc(func(*http.Request) (string, error) { return "operator", nil }), status: 204, op: "operator"},
		{name: "rejected", port: portFunc(func(*http.Request) (string, error) {
			return "", perr.Unauthorizedf("token mismatch")
		}), status: 401},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			seen = ""
			rr := httptest.NewRecorder()
			middleware.Auth(tc.port, writeJSON)(next).ServeHTTP(rr, httptest.NewRequest("POST", "/api/v1/check-batch", nil))
			if rr.Code != tc.status || seen != tc.op {
				t.Fatalf("status=%d operator=%q", rr.Code, seen)
			}
			if tc.status == 401 && strings.Contains(rr.Body.String(), "mismatch") {
				t.Fatalf("internal message leaked: %s", rr.Body.String())
			}
		})
	}
}

func TestRequestIDPropagation(t *testing.T) {
	var fromCtx string
	h := middleware.RequestID()(middleware.RequestContext(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromCtx = pnet.RequestID(r.Context())
	})))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-Id", "rid-77")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if fromCtx != "rid-77" || rr.Header().Get("X-Request-ID") != "rid-77" {
		t.Fatalf("ctx=%q header=%q", fromCtx, rr.Header().Get("X-Request-ID"))
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))
	if fromCtx == "" || rr.Header().Get("X-Request-ID") != fromCtx {
		t.Fatalf("generated id not echoed: ctx=%q header=%q", fromCtx, rr.Header().Get("X-Request-ID"))
	}
}

func TestRecoverJSON(t *testing.T) {
	h := middleware.RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(errors.New("session key 0xdeadbeef"))
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status %d", rr.Code)
	}
	var body struct {
		Code  perr.ErrorCode `json:"code"`
		Error string         `json:"error"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Code != perr.ErrorCodePanic || body.Error != perr.PublicMessage(perr.ErrorCodePanic) {
		t.Fatalf("body %+v", body)
	}
	if strings.Contains(rr.Body.String(), "deadbeef") {
		t.Fatal("panic value leaked")
	}
}

func TestAccessLog_PassesThrough(t *testing.T) {
	for _, slow := range []time.Duration{0, time.Nanosecond} {
		h := middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: slow})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, "ok")
		}))
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest("POST", "/console/check?phone=+1555", nil))
		if rr.Code != http.StatusCreated || rr.Body.String() != "ok" {
			t.Fatalf("slow=%v: %d %q", slow, rr.Code, rr.Body.String())
		}
	}
}

func TestAccessLog_MetricsUseRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(middleware.AccessLogZerolog(middleware.AccessLogOptions{}))
	r.Get("/runs/{id}", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) })

	c := metrics.HTTPRequests.WithLabelValues(http.MethodGet, "/runs/{id}", "418")
	before := testutil.ToFloat64(c)
	for _, id := range []string{"a1", "b2", "c3"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/runs/"+id, nil))
	}
	if got := testutil.ToFloat64(c); got != before+3 {
		t.Fatalf("counter = %v want %v", got, before+3)
	}
}

func TestCORS(t *testing.T) {
	h := middleware.CORS(middleware.CORSOptions{AllowedOrigins: []string{"https://ops.example"}})(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/check-account", nil)
	req.Header.Set("Origin", "https://ops.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://ops.example" {
		t.Fatalf("allow origin %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/session", nil)
	req.Header.Set("Origin", "https://evil.example")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("foreign origin allowed: %q", got)
	}
}

func TestCompressAndNoCache(t *testing.T) {
	h := middleware.NoCache()(middleware.Compress(flate.BestSpeed)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		_, _ = io.WriteString(w, strings.Repeat("+15551234567,true\n", 200))
	})))
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("encoding %q", rr.Header().Get("Content-Encoding"))
	}
	if !strings.Contains(rr.Header().Get("Cache-Control"), "no-cache") {
		t.Fatalf("cache-control %q", rr.Header().Get("Cache-Control"))
	}
}
