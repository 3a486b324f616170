// Package api provides the versioned JSON API
package api

import (
	"tgcheck/internal/platform/config"
	"tgcheck/internal/platform/logger"
	phttp "tgcheck/internal/platform/net/http"

	"tgcheck/internal/modkit"
	"tgcheck/internal/modkit/httpkit"
	"tgcheck/internal/modkit/module"
	"tgcheck/internal/modkit/swaggerkit"

	checkmod "tgcheck/internal/services/api/check/module"
	metahttp "tgcheck/internal/services/api/meta/http"
	metamod "tgcheck/internal/services/api/meta/module"
	sessmod "tgcheck/internal/services/api/session/module"
	checkdom "tgcheck/internal/services/checker/domain"
	sessdom "tgcheck/internal/services/session/domain"
)

// Options are the API options
type Options struct {
	Config  config.Conf
	Logger  *logger.Logger
	Login   sessdom.ServicePort
	Checker checkdom.ServicePort
	Probes  []metahttp.Probe

	// Token guards everything but meta with a bearer token; empty leaves the API open
	Token string

	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts /api/v1 plus docs and profiler onto the given router.
// The caller owns the root middleware stack
func Mount(r phttp.Router, opt Options) {
	if opt.Login == nil || opt.Checker == nil {
		panic("api: login and checker ports are required")
	}

	deps := modkit.Deps{Cfg: opt.Config}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	open := []module.Module{
		metamod.New(deps, opt.Probes),
	}
	guarded := []module.Module{
		checkmod.New(deps, modkit.WithPorts(checkmod.Ports{
			Login:   opt.Login,
			Checker: opt.Checker,
		})),
		sessmod.New(deps, opt.Login),
	}

	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	httpkit.MountAPIV1(r, nil, func(api httpkit.Router) {
		for _, m := range open {
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
		httpkit.Protected(api, httpkit.StaticToken(opt.Token), func(pr httpkit.Router) {
			for _, m := range guarded {
				module.Register(m.Name(), m.Ports())
				m.MountRoutes(pr)
			}
		})
	})

	deps.Log.Info().
		Bool("token_guard", opt.Token != "").
		Bool("swagger", opt.EnableSwagger).
		Bool("profiler", opt.EnableProfiler).
		Msg("api mounted at /api/v1")
}
