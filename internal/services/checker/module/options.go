package module

import (
	"time"

	"tgcheck/internal/core/phonelist"
	"tgcheck/internal/platform/config"
)

// Options holds configuration settings for the checker module
type Options struct {
	BatchSize        int
	BatchDelay       time.Duration
	FirstDelay       bool
	PopularThreshold int
	MaxNumbers       int
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	cf := cfg.Prefix("CHECK_")
	return Options{
		BatchSize:        cf.MayInt("BATCH_SIZE", 10),
		BatchDelay:       cf.MayDuration("BATCH_DELAY", 2*time.Second),
		FirstDelay:       cf.MayBool("FIRST_DELAY", true),
		PopularThreshold: cf.MayInt("POPULAR_THRESHOLD", 1),
		MaxNumbers:       cf.MayInt("MAX_NUMBERS", phonelist.DefaultLimit),
	}
}
