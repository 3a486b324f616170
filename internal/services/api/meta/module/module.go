// Package module mounts the meta endpoints
package module

import (
	"time"

	modkit "tgcheck/internal/modkit"
	"tgcheck/internal/modkit/httpkit"
	"tgcheck/internal/modkit/module"

	metahttp "tgcheck/internal/services/api/meta/http"
)

// Module serves health, readiness and build info under /meta
type Module struct {
	b       modkit.Built
	probes  []metahttp.Probe
	timeout time.Duration
	started time.Time
}

// New constructs the meta module; probes feed /meta/ready
func New(deps modkit.Deps, probes []metahttp.Probe, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	return &Module{
		b:       b,
		probes:  probes,
		timeout: deps.Cfg.MayDuration("META_PROBE_TIMEOUT", 2*time.Second),
		started: time.Now(),
	}
}

// MountRoutes mounts the meta routes under the module prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) {
		metahttp.Register(rr, metahttp.Deps{
			StartedAt:    m.started,
			Probes:       m.probes,
			ProbeTimeout: m.timeout,
			Modules:      module.Names,
		})
	})
}

// Name returns the module name
func (m *Module) Name() string { return m.b.Name }

// Ports returns nothing
func (m *Module) Ports() any { return nil }
