// Package module mounts the operator console at the site root
package module

import (
	"tgcheck/internal/modkit"
	"tgcheck/internal/modkit/httpkit"
	checkdom "tgcheck/internal/services/checker/domain"
	consolehttp "tgcheck/internal/services/console/http"
	sessdom "tgcheck/internal/services/session/domain"
)

// Module implements the console module
type Module struct {
	login    sessdom.ServicePort
	checker  checkdom.ServicePort
	maxBytes int64
}

// New constructs the console over the login and checker ports
func New(deps modkit.Deps, login sessdom.ServicePort, checker checkdom.ServicePort) *Module {
	if login == nil || checker == nil {
		panic("console: login and checker ports are required")
	}
	return &Module{
		login:    login,
		checker:  checker,
		maxBytes: int64(deps.Cfg.MayInt("MAX_UPLOAD_BYTES", 1<<20)),
	}
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "console" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return nil }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	consolehttp.Register(r, consolehttp.Deps{
		Login:    m.login,
		Checker:  m.checker,
		MaxBytes: m.maxBytes,
	})
}
