// internal/workers/lead/crm-lead-sync/config.go
package crmleadsync

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}
