package store

import (
	"time"

	"tgcheck/internal/platform/config"
)

// Config configures the postgres session store. An empty URL disables it
type Config struct {
	URL         string
	AppName     string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// ConnectRetries and PingTimeout bound the startup wait for the server
	ConnectRetries int
	PingTimeout    time.Duration
}

const (
	defaultConnectRetries = 20
	defaultPingTimeout    = 3 * time.Second
)

// FromConfig reads DBURL, MAX_CONNS, SLOW_MS, LOG_SQL, CONNECT_RETRIES and PING_TIMEOUT under c
func FromConfig(c config.Conf, appName string) Config {
	return Config{
		URL:            c.MayString("DBURL", ""),
		AppName:        appName,
		MaxConns:       int32(c.MayInt("MAX_CONNS", 2)),
		LogSQL:         c.MayBool("LOG_SQL", false),
		SlowQueryMs:    c.MayInt("SLOW_MS", 500),
		ConnectRetries: c.MayInt("CONNECT_RETRIES", defaultConnectRetries),
		PingTimeout:    c.MayDuration("PING_TIMEOUT", defaultPingTimeout),
	}
}

// Enabled reports whether a postgres URL was configured
func (c Config) Enabled() bool { return c.URL != "" }

func (c Config) retries() int {
	if c.ConnectRetries > 0 {
		return c.ConnectRetries
	}
	return defaultConnectRetries
}

func (c Config) pingTimeout() time.Duration {
	if c.PingTimeout > 0 {
		return c.PingTimeout
	}
	return defaultPingTimeout
}
