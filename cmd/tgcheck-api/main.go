// @title         tgcheck API
// @version       0.1.0
// @description   Telegram account existence checks over a single operator session
// @BasePath      /api/v1
// @securityDefinitions.apikey bearer
// @in header
// @name Authorization

package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"tgcheck/internal/adapters/telegram"
	"tgcheck/internal/core/version"
	"tgcheck/internal/modkit"
	"tgcheck/internal/modkit/httpkit"
	"tgcheck/internal/modkit/module"
	"tgcheck/internal/modkit/repokit"
	"tgcheck/internal/platform/config"
	"tgcheck/internal/platform/logger"
	"tgcheck/internal/platform/metrics"
	phttp "tgcheck/internal/platform/net/http"
	"tgcheck/internal/platform/store"

	"tgcheck/internal/services/api"
	metahttp "tgcheck/internal/services/api/meta/http"
	checkermod "tgcheck/internal/services/checker/module"
	consolemod "tgcheck/internal/services/console/module"
	sessionmod "tgcheck/internal/services/session/module"

	gotd "github.com/gotd/td/session"
)

func main() {
	// .env first, everything below reads the environment
	envFile := config.LoadDotenv()

	logger.Init(logger.FromEnv())
	l := logger.Get()
	if envFile != "" {
		l.Info().Str("path", envFile).Msg("env file loaded")
	}
	info := version.Info()
	l.Info().Str("version", info.Version).Str("commit", info.Commit).Msg("starting")

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tgOpts := telegram.FromConfig(root)

	// session storage: postgres when configured, otherwise the session file
	st, err := store.Open(ctx, store.FromConfig(root.Prefix("SESSION_PGSQL_"), info.Service))
	if err != nil {
		l.Panic().Err(err).Msg("store open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	var storage gotd.Storage
	if st.PG != nil {
		repokit.MustGuard(ctx, st)
		err = repokit.WithTx(ctx, st.PG, func(q repokit.Queryer) error {
			return telegram.NewPGStorage(q, tgOpts.Phone).Migrate(ctx)
		})
		if err != nil {
			l.Panic().Err(err).Msg("session table migration failed")
		}
		storage = telegram.NewPGStorage(st.PG, tgOpts.Phone)
		l.Info().Msg("telegram session stored in postgres")
	} else {
		l.Info().Str("file", tgOpts.SessionFile).Msg("telegram session stored on disk")
	}

	// one operator session for the whole process
	sess := telegram.New(tgOpts, storage)
	if err := sess.Connect(ctx); err != nil {
		l.Panic().Err(err).Msg("telegram connect failed")
	}

	deps := modkit.Deps{Log: *l, Cfg: root}

	checker := checkermod.New(deps, sess.Contacts(), sess)
	login := sessionmod.New(deps, sess)
	module.Register(checker.Name(), checker.Ports())
	module.Register(login.Name(), login.Ports())

	loginPort := module.MustPortsAs[sessionmod.Ports](login.Name()).Login
	checkPort := module.MustPortsAs[checkermod.Ports](checker.Name()).Checker

	consoleDeps := deps
	consoleDeps.Cfg = root.Prefix("CONSOLE_")
	console := consolemod.New(consoleDeps, loginPort, checkPort)

	probes := []metahttp.Probe{{Name: "telegram", Target: sess}}
	if st.PG != nil {
		probes = append(probes, metahttp.Probe{Name: "postgres", Target: st})
	}

	srv := phttp.NewServer(apiCfg)
	r := srv.Router()
	r.Use(httpkit.CommonStack(httpkit.StackOptions{
		CORSOrigins: apiCfg.MayCSV("CORS_ORIGINS", []string{"*"}),
		Slow:        apiCfg.MayDuration("SLOW_REQUEST", 0),
	})...)

	r.Handle("/metrics", metrics.Handler())
	console.MountRoutes(r)
	api.Mount(r, api.Options{
		Config:         apiCfg,
		Logger:         l,
		Login:          loginPort,
		Checker:        checkPort,
		Probes:         probes,
		Token:          apiCfg.MayString("TOKEN", ""),
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
	})

	errc := make(chan error, 1)
	go func() { errc <- srv.Run(ctx) }()

	select {
	case err := <-errc:
		if err != nil {
			l.Error().Err(err).Msg("http server stopped")
		}
	case <-ctx.Done():
		l.Info().Msg("shutting down")
	}

	shutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		l.Error().Err(err).Msg("http shutdown")
	}
	if err := sess.Disconnect(shutCtx); err != nil {
		l.Error().Err(err).Msg("telegram disconnect")
	}
}
