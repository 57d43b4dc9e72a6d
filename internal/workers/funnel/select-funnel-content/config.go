// internal/workers/funnel/select-funnel-content/config.go
package selectfunnelcontent

import "time"

type Config struct {
	Timeout        time.Duration
	FallbackFunnel string
}

func LoadConfig() *Config {
	return &Config{
		Timeout:        10 * time.Second,
		FallbackFunnel: "magic_tool_generic",
	}
}
