// Package module wires operator login over the telegram session
package module

import (
	"context"

	"tgcheck/internal/adapters/telegram"
	"tgcheck/internal/modkit"
	"tgcheck/internal/modkit/httpkit"
	"tgcheck/internal/services/session/domain"
	"tgcheck/internal/services/session/service"
)

// Ports exposed by the session module
type Ports struct {
	Login domain.ServicePort
}

// Client is the part of *telegram.Session the module needs
type Client interface {
	Status(ctx context.Context) (telegram.Status, error)
	RequestCode(ctx context.Context) error
	SignIn(ctx context.Context, code string) error
}

// Module implements the session module
type Module struct {
	ports Ports
}

// New constructs the module over a live telegram session
func New(_ modkit.Deps, c Client) *Module {
	svc := service.New(upstream{c: c})
	return &Module{ports: Ports{Login: svc}}
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "session" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}

// upstream adapts the telegram session to the login domain
type upstream struct{ c Client }

func (u upstream) Status(ctx context.Context) (domain.Status, error) {
	st, err := u.c.Status(ctx)
	return domain.Status{
		Connected:     st.Connected,
		Authorized:    st.Authorized,
		CodeRequested: st.CodeRequested,
		CodeSentAt:    st.CodeSentAt,
		Phone:         st.Phone,
	}, err
}

func (u upstream) RequestCode(ctx context.Context) error { return u.c.RequestCode(ctx) }

func (u upstream) SignIn(ctx context.Context, code string) error { return u.c.SignIn(ctx, code) }
