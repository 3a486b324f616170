package telegram

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newZap builds the logger handed to the MTProto client. It is kept
// quiet by default; the service itself logs through zerolog
func newZap(level string) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.WarnLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Sampling = nil
	cfg.DisableStacktrace = true
	cfg.InitialFields = map[string]any{"component": "mtproto"}
	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}
