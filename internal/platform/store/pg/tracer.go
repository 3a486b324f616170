package pg

import (
	"context"
	"fmt"
	"strings"

	"tgcheck/internal/platform/logger"

	"github.com/rs/zerolog"
)

// QueryEvent is one executed statement as seen by the adapter
type QueryEvent struct {
	SQL       string
	Args      []any
	ElapsedUS int64
	Err       error
	Slow      bool
}

// QueryTracer receives an event per statement
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// Tracer logs every statement at info, slow ones at warn, regardless of the root level.
// Binary args are never logged, they carry MTProto session keys
func Tracer(root logger.Logger) QueryTracer {
	ll := root.Level(zerolog.DebugLevel).With().Str("component", "pg").Logger()
	return &zlTracer{log: ll}
}

type zlTracer struct{ log logger.Logger }

func (z *zlTracer) OnQuery(_ context.Context, ev QueryEvent) {
	evt := z.log.Info()
	if ev.Slow {
		evt = z.log.Warn()
	}
	evt.Float64("elapsed_ms", float64(ev.ElapsedUS)/1000.0).
		Bool("slow", ev.Slow).
		Str("sql", compact(ev.SQL)).
		Strs("args", redact(ev.Args)).
		Err(ev.Err).
		Msg("pg query")
}

func redact(args []any) []string {
	out := make([]string, len(args))
	for i, a := range args {
		switch v := a.(type) {
		case []byte:
			out[i] = fmt.Sprintf("<%d bytes>", len(v))
		default:
			out[i] = fmt.Sprint(v)
		}
	}
	return out
}

// compact folds runs of whitespace into one space
func compact(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
