// Package module holds the module contract and the process registry of port sets
package module

import (
	phttp "tgcheck/internal/platform/net/http"
)

// Module is mounted by the API and may expose ports for other modules.
// It lives apart from modkit so port types can import it without cycles
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
