// Package module wires the check workflow over the telegram session
package module

import (
	"tgcheck/internal/modkit"
	"tgcheck/internal/modkit/httpkit"
	"tgcheck/internal/services/checker/domain"
	"tgcheck/internal/services/checker/service"
)

// Ports exposed by the checker module
type Ports struct {
	Checker domain.ServicePort
}

// Module implements the checker service module
type Module struct {
	svc   *service.Service
	ports Ports
}

// New constructs a new checker module over the upstream contacts and session gate
func New(deps modkit.Deps, contacts domain.Contacts, gate domain.Gate) *Module {
	opts := FromConfig(deps.Cfg)

	svc := service.New(contacts, gate, service.Config{
		BatchSize:        opts.BatchSize,
		BatchDelay:       opts.BatchDelay,
		FirstDelay:       opts.FirstDelay,
		PopularThreshold: opts.PopularThreshold,
		MaxNumbers:       opts.MaxNumbers,
	})

	cfg := svc.Config()
	deps.Log.Info().
		Int("batch_size", cfg.BatchSize).
		Dur("batch_delay", cfg.BatchDelay).
		Int("popular_threshold", cfg.PopularThreshold).
		Int("max_numbers", cfg.MaxNumbers).
		Msg("checker configured")

	return &Module{svc: svc, ports: Ports{Checker: svc}}
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "checker" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}
