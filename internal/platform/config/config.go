// Package config reads process settings from the environment, optionally seeded from a .env file
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	perr "tgcheck/internal/platform/errors"
	"tgcheck/internal/platform/logger"

	"github.com/joho/godotenv"
)

// Conf is a prefixed view over the environment. Prefix("TELEGRAM_").MayString("PHONE", "")
// reads TELEGRAM_PHONE
type Conf struct{ prefix string }

// New returns the unprefixed view
func New() Conf { return Conf{} }

// Prefix returns a nested view
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) key(k string) string { return c.prefix + k }

func (c Conf) get(k string) string { return strings.TrimSpace(os.Getenv(c.key(k))) }

// LoadDotenv loads the first readable file (default ".env"). Variables already set win.
// Returns the path loaded, or "" when none was
func LoadDotenv(paths ...string) string {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			logger.Get().Warn().Err(err).Str("path", p).Msg("env file unreadable")
			continue
		}
		return p
	}
	return ""
}

// fail panics with a Config error; startup cannot go on without the key
func (c Conf) fail(key, value, msg string) {
	evt := logger.Get().Error().Str("key", c.key(key))
	if value != "" {
		evt = evt.Str("value", value)
	}
	evt.Msg(msg)
	panic(perr.Configf("%s: %s", c.key(key), msg))
}

// Require panics on the first of keys that is unset or blank
func (c Conf) Require(keys ...string) {
	for _, k := range keys {
		if c.get(k) == "" {
			c.fail(k, "", "missing required env")
		}
	}
}

// MustString panics when key is unset or blank
func (c Conf) MustString(key string) string {
	c.Require(key)
	return c.get(key)
}

// MustInt panics when key is unset or not an integer
func (c Conf) MustInt(key string) int {
	s := c.MustString(key)
	v, err := strconv.Atoi(s)
	if err != nil {
		c.fail(key, s, "invalid int value")
	}
	return v
}

// may parses key with parse, falling back to def when unset. Unparsable values
// are logged and also fall back
func may[T any](c Conf, key string, def T, parse func(string) (T, error)) T {
	s := c.get(key)
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Interface("default", def).Msg("invalid value, using default")
		return def
	}
	return v
}

// MayString returns key or def
func (c Conf) MayString(key, def string) string {
	return may(c, key, def, func(s string) (string, error) { return s, nil })
}

// MayInt returns key as an int or def
func (c Conf) MayInt(key string, def int) int { return may(c, key, def, strconv.Atoi) }

// MayBool returns key as a bool (strconv rules) or def
func (c Conf) MayBool(key string, def bool) bool { return may(c, key, def, strconv.ParseBool) }

// MayDuration returns key as a duration like "5s" or def
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, def, time.ParseDuration)
}

// MayCSV splits key on commas, dropping blanks. def when nothing is left
func (c Conf) MayCSV(key string, def []string) []string {
	var out []string
	for _, p := range strings.Split(c.get(key), ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns key lower cased, or def. A value outside allowed panics
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := c.MayString(key, def)
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return strings.ToLower(v)
		}
	}
	if v == "" {
		return v
	}
	c.fail(key, v, "must be one of "+strings.Join(allowed, ","))
	return ""
}
