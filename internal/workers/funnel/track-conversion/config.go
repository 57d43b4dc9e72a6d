// internal/workers/funnel/track-conversion/config.go
package trackconversion

import "time"

type Config struct {
	Timeout    time.Duration
	CounterTTL time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout:    5 * time.Second,
		CounterTTL: 90 * 24 * time.Hour,
	}
}
