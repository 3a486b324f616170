// Package http serves the meta endpoints: liveness, readiness, build and service info
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"tgcheck/internal/core/version"
	"tgcheck/internal/modkit/httpkit"
	perr "tgcheck/internal/platform/errors"
)

// Pinger is satisfied by the telegram session and the store
type Pinger interface {
	Ping(context.Context) error
}

// Probe names a readiness dependency. A nil Target is reported as skipped
type Probe struct {
	Name   string
	Target Pinger
}

// Deps are the handler dependencies
type Deps struct {
	StartedAt    time.Time
	Probes       []Probe
	ProbeTimeout time.Duration
	// Modules lists mounted modules for /service
	Modules func() []string
}

type handlers struct{ deps Deps }

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	if d.ProbeTimeout <= 0 {
		d.ProbeTimeout = 2 * time.Second
	}
	h := &handlers{deps: d}
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
}

// HealthResponse is the liveness payload
// swagger:model
type HealthResponse struct {
	OK  bool   `json:"ok"  example:"true"`
	Now string `json:"now" example:"2026-10-19T13:05:00Z"`
}

// ReadyCheck is the outcome of one probe
type ReadyCheck struct {
	Name   string `json:"name"   example:"telegram"`
	Status string `json:"status" example:"ok"` // ok fail skipped
	Error  string `json:"error,omitempty" example:"Telegram is unreachable right now, please try again later"`
}

// ReadyResponse is "ok" only when every probe passed
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"` // ok degraded fail
	Checks []ReadyCheck `json:"checks"`
}

// ServiceResponse describes the running process
type ServiceResponse struct {
	Name    string   `json:"name"    example:"tgcheck"`
	Started string   `json:"started" example:"2026-10-19T13:00:00Z"`
	Uptime  int64    `json:"uptime"  example:"300"`
	Modules []string `json:"modules" example:"api.check,api.session,checker,meta,session"`
}

// @Summary Liveness
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /meta/health [get]
func (h *handlers) health(*http.Request) (any, error) {
	return HealthResponse{OK: true, Now: time.Now().UTC().Format(time.RFC3339)}, nil
}

// @Summary Readiness of the telegram session and the session store
// @Description Probes run in parallel; a failing probe reports only its public message
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Failure 503 {object} httpkit.Envelope
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), h.deps.ProbeTimeout)
	defer cancel()

	checks := make([]ReadyCheck, len(h.deps.Probes))
	var wg sync.WaitGroup
	for i, p := range h.deps.Probes {
		checks[i] = ReadyCheck{Name: p.Name, Status: "skipped"}
		if p.Target == nil {
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := p.Target.Ping(ctx); err != nil {
				checks[i] = ReadyCheck{Name: p.Name, Status: "fail", Error: perr.Public(err)}
				return
			}
			checks[i].Status = "ok"
		}()
	}
	wg.Wait()

	out := ReadyResponse{Status: "ok", Checks: checks}
	for _, c := range checks {
		switch {
		case c.Status == "fail":
			out.Status = "fail"
		case c.Status != "ok" && out.Status == "ok":
			out.Status = "degraded"
		}
	}
	if out.Status == "fail" {
		return httpkit.Status(http.StatusServiceUnavailable, out), nil
	}
	return out, nil
}

// @Summary Build info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /meta/version [get]
func (h *handlers) version(*http.Request) (any, error) {
	return version.Info(), nil
}

// @Summary Service info, uptime and mounted modules
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse
// @Router /meta/service [get]
func (h *handlers) service(*http.Request) (any, error) {
	out := ServiceResponse{
		Name:    version.Info().Service,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(time.Since(h.deps.StartedAt) / time.Second),
	}
	if h.deps.Modules != nil {
		out.Modules = h.deps.Modules()
	}
	return out, nil
}
