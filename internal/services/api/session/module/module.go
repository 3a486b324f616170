// Package module wires the session endpoints into the API
package module

import (
	modkit "tgcheck/internal/modkit"
	"tgcheck/internal/modkit/httpkit"
	sesshttp "tgcheck/internal/services/api/session/http"
	sessdom "tgcheck/internal/services/session/domain"
)

// Module implements the session API module
type Module struct {
	b     modkit.Built
	login sessdom.ServicePort
}

// New constructs the module over the login port
func New(_ modkit.Deps, login sessdom.ServicePort, opts ...modkit.Option) modkit.Module {
	if login == nil {
		panic("session api: login port is required")
	}
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("api.session"),
		modkit.WithPrefix("/session"),
	}, opts...)...)
	return &Module{b: b, login: login}
}

// MountRoutes mounts status, code and verify under the prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { sesshttp.Register(rr, m.login) })
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return m.b.Name }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
