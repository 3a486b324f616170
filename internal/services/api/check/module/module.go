// Package module wires the JSON check endpoints into the API
package module

import (
	modkit "tgcheck/internal/modkit"
	"tgcheck/internal/modkit/httpkit"
	checkhttp "tgcheck/internal/services/api/check/http"
	checkdom "tgcheck/internal/services/checker/domain"
	sessdom "tgcheck/internal/services/session/domain"
)

// Ports the check API consumes from other modules
type Ports struct {
	Login   sessdom.ServicePort
	Checker checkdom.ServicePort
}

// Module implements the check API module
type Module struct {
	b    modkit.Built
	deps checkhttp.Deps
}

// New constructs the module; the login and checker ports must be supplied via modkit.WithPorts
func New(_ modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("api.check")}, opts...)...)

	p, ok := b.Ports.(Ports)
	if !ok || p.Login == nil || p.Checker == nil {
		panic("check api: modkit.WithPorts(check.Ports{Login, Checker}) is required")
	}
	return &Module{b: b, deps: checkhttp.Deps{Login: p.Login, Checker: p.Checker}}
}

// MountRoutes mounts the endpoints at the API root unless a prefix was given
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { checkhttp.Register(rr, m.deps) })
}

// Name returns the module name
func (m *Module) Name() string { return m.b.Name }

// Ports returns nothing, the module only consumes ports
func (m *Module) Ports() any { return nil }
