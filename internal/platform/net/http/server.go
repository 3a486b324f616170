package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"time"

	"tgcheck/internal/platform/config"
	"tgcheck/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// Server owns the root chi mux and the listener
type Server struct {
	mux *chi.Mux
	srv *stdhttp.Server
}

// NewServer reads ADDR (default :8080) from cfg. No write timeout is set
// since a check run answers only after its last batch
func NewServer(cfg config.Conf) *Server {
	m := chi.NewRouter()
	return &Server{
		mux: m,
		srv: &stdhttp.Server{
			Addr:              cfg.MayString("ADDR", ":8080"),
			Handler:           m,
			ReadHeaderTimeout: 10 * time.Second,
			IdleTimeout:       cfg.MayDuration("IDLE_TIMEOUT", 2*time.Minute),
		},
	}
}

// Router returns the root router
func (s *Server) Router() Router { return AdaptChi(s.mux) }

// Addr returns the configured listen address
func (s *Server) Addr() string { return s.srv.Addr }

// Run serves until Shutdown; a clean shutdown returns nil
func (s *Server) Run(context.Context) error {
	logger.Named("http").Info().Str("addr", s.srv.Addr).Msg("http listening")
	if err := s.srv.ListenAndServe(); !errors.Is(err, stdhttp.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests until ctx ends
func (s *Server) Shutdown(ctx context.Context) error { return s.srv.Shutdown(ctx) }
