package modkit

import (
	"tgcheck/internal/modkit/httpkit"
	pstrings "tgcheck/internal/platform/strings"
)

// Built is the result of applying options over a module's defaults
type Built struct {
	Name   string
	Prefix string
	Ports  any
}

// Build applies opts in order, so callers override a module's defaults by appending
func Build(opts ...Option) Built {
	var b Built
	for _, o := range opts {
		o(&b)
	}
	return b
}

// Mount runs register under Prefix, or in a group at r when Prefix is empty
func (b Built) Mount(r httpkit.Router, register func(httpkit.Router)) {
	if b.Prefix == "" {
		r.Group(register)
		return
	}
	r.Route(pstrings.MustPrefix(b.Prefix), register)
}
