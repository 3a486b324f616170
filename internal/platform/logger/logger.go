// Package logger owns the process zerolog root and the per request and per run children
package logger

import (
	"context"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"tgcheck/internal/platform/config/raw"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Logger is the type every package logs through
type Logger = zerolog.Logger

// Options configures the root logger. Format is "console" or "json"
type Options struct {
	Level       string
	Format      string
	Service     string
	Writer      io.Writer
	Caller      bool
	SampleEvery int
}

// FromEnv reads LOG_* through the raw view, which cannot log
func FromEnv() Options {
	rc := raw.New().Prefix("LOG_")
	return Options{
		Level:       rc.GetLower("LEVEL", "info"),
		Format:      rc.GetLower("FORMAT", "console"),
		Service:     rc.Get("SERVICE", "tgcheck"),
		Caller:      rc.GetBool("CALLER", false),
		SampleEvery: rc.GetInt("SAMPLE_EVERY", 0),
	}
}

var (
	once sync.Once
	root atomic.Pointer[zerolog.Logger]
)

// Init builds the root logger. Only the first call has any effect
func Init(opt Options) {
	once.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano

		l := New(opt)
		root.Store(&l)
	})
}

// New builds a standalone logger from opt without touching the root
func New(opt Options) Logger {
	var w io.Writer = os.Stdout
	if opt.Writer != nil {
		w = opt.Writer
	}
	if opt.Format != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: opt.Writer != nil}
	}

	lvl, err := zerolog.ParseLevel(opt.Level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	b := zerolog.New(w).Level(lvl).With().Timestamp()
	if opt.Service != "" {
		b = b.Str("service", opt.Service)
	}
	if opt.Caller {
		b = b.Caller()
	}
	l := b.Logger()
	if opt.SampleEvery > 1 {
		l = l.Sample(&zerolog.BasicSampler{N: uint32(opt.SampleEvery)})
	}
	return l
}

// Get returns the root logger, initialising it from the environment on first use
func Get() *Logger {
	if l := root.Load(); l != nil {
		return l
	}
	Init(FromEnv())
	return root.Load()
}

// Named returns a child tagged with component
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	l := Get().With().Str("component", component).Logger()
	return &l
}

type ctxKey int

const (
	keyRequestID ctxKey = iota
	keyRunID
)

// WithRequest stores the request id for C
func WithRequest(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, keyRequestID, id)
}

// WithRun stores the check run id for C, so every batch line of one run correlates
func WithRun(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, keyRunID, id)
}

// C returns a child carrying whichever of request_id and run_id ctx holds
func C(ctx context.Context) *Logger {
	b := Get().With()
	if id, _ := ctx.Value(keyRequestID).(string); id != "" {
		b = b.Str("request_id", id)
	}
	if id, _ := ctx.Value(keyRunID).(string); id != "" {
		b = b.Str("run_id", id)
	}
	l := b.Logger()
	return &l
}
