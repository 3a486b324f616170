package telegram

import (
	"time"

	"tgcheck/internal/platform/config"
)

const (
	defaultCooldown       = 60 * time.Second
	defaultConnectTimeout = 30 * time.Second
	defaultSessionFile    = "session.json"
	defaultLogLevel       = "warn"
)

// Options configures the operator session
type Options struct {
	AppID   int
	AppHash string
	Phone   string

	// Password completes sign in for accounts with two-step verification
	Password string

	// CodeCooldown is the minimum gap between two login code requests
	CodeCooldown   time.Duration
	ConnectTimeout time.Duration

	SessionFile string
	LogLevel    string
}

// FromConfig reads TELEGRAM_* settings; the api id, hash and phone are required
func FromConfig(cfg config.Conf) Options {
	tc := cfg.Prefix("TELEGRAM_")
	tc.Require("API_ID", "API_HASH", "PHONE")
	return Options{
		AppID:          tc.MustInt("API_ID"),
		AppHash:        tc.MustString("API_HASH"),
		Phone:          tc.MustString("PHONE"),
		Password:       tc.MayString("PASSWORD", ""),
		CodeCooldown:   tc.MayDuration("CODE_COOLDOWN", defaultCooldown),
		ConnectTimeout: tc.MayDuration("CONNECT_TIMEOUT", defaultConnectTimeout),
		SessionFile:    tc.MayString("SESSION_FILE", defaultSessionFile),
		LogLevel:       tc.MayEnum("LOG_LEVEL", defaultLogLevel, "debug", "info", "warn", "error"),
	}
}

func (o Options) withDefaults() Options {
	if o.CodeCooldown <= 0 {
		o.CodeCooldown = defaultCooldown
	}
	if o.ConnectTimeout <= 0 {
		o.ConnectTimeout = defaultConnectTimeout
	}
	if o.SessionFile == "" {
		o.SessionFile = defaultSessionFile
	}
	if o.LogLevel == "" {
		o.LogLevel = defaultLogLevel
	}
	return o
}

// MaskPhone keeps the country prefix and last two digits of a phone
func MaskPhone(p string) string {
	if len(p) <= 5 {
		return p
	}
	head, tail := p[:3], p[len(p)-2:]
	mid := make([]byte, len(p)-5)
	for i := range mid {
		mid[i] = '*'
	}
	return head + string(mid) + tail
}
