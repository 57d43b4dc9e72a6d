// internal/workers/funnel/query-research-content/config.go
package queryresearchcontent

import "time"

type Config struct {
	Timeout time.Duration
	Index   string
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
		Index:   "funnel-research",
	}
}
