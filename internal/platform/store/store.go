// Package store holds the optional postgres backend for the telegram session behind a small sql seam
package store

import (
	"context"
	"fmt"
	"time"

	perr "tgcheck/internal/platform/errors"
	"tgcheck/internal/platform/logger"
	"tgcheck/internal/platform/store/pg"
)

// Store owns the postgres connection. The zero value has no backend and every method is a no-op
type Store struct {
	Log logger.Logger

	// PG is nil unless postgres is configured
	PG TxRunner
}

// Option adjusts a Store before it connects
type Option func(*Store)

// WithLogger sets the logger used for connect retries and sql tracing
func WithLogger(l logger.Logger) Option {
	return func(s *Store) { s.Log = l }
}

// Open connects to postgres when cfg is enabled, retrying the first ping with backoff
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{Log: logger.Named("store").With().Logger()}
	for _, o := range opts {
		o(s)
	}
	if !cfg.Enabled() {
		return s, nil
	}

	var tracer pg.QueryTracer
	if cfg.LogSQL {
		tracer = pg.Tracer(s.Log)
	}
	p, err := pg.Open(ctx, pg.Config{
		URL:      cfg.URL,
		MaxConns: cfg.MaxConns,
		AppName:  cfg.AppName,
		SlowMs:   cfg.SlowQueryMs,
	}, tracer)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeConfig, "postgres config")
	}
	if err := s.waitReady(ctx, p, cfg); err != nil {
		p.Close()
		return nil, err
	}
	s.PG = newPGAdapter(p)
	return s, nil
}

// waitReady pings the raw pool, so the attempts stay out of the sql trace
func (s *Store) waitReady(ctx context.Context, p *pg.PG, cfg Config) error {
	backoff := 150 * time.Millisecond
	var err error
	for attempt := 1; attempt <= cfg.retries(); attempt++ {
		pctx, cancel := context.WithTimeout(ctx, cfg.pingTimeout())
		err = p.Pool.Ping(pctx)
		cancel()
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.Log.Warn().Err(err).Int("attempt", attempt).Dur("backoff", backoff).Msg("postgres not ready")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, 2*time.Second)
	}
	return perr.Wrap(err, perr.ErrorCodeDB, fmt.Sprintf("postgres unreachable after %d attempts", cfg.retries()))
}

// Guard pings every configured backend
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return perr.New(perr.ErrorCodeDB, "nil store")
	}
	p, ok := s.PG.(interface{ Ping(context.Context) error })
	if !ok {
		return nil
	}
	if err := p.Ping(ctx); err != nil {
		return perr.Wrap(err, perr.ErrorCodeDB, "postgres ping")
	}
	return nil
}

// Ping makes the store a readiness probe
func (s *Store) Ping(ctx context.Context) error { return s.Guard(ctx) }

// Close releases the pool
func (s *Store) Close(context.Context) error {
	if s == nil {
		return nil
	}
	if c, ok := s.PG.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
