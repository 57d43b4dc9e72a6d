// internal/workers/lead/send-welcome-email/config.go
package sendwelcomeemail

import "time"

type Config struct {
	EmailEnabled bool
	FromEmail    string
	AWSRegion    string
	Timeout      time.Duration
}

func LoadConfig() *Config {
	return &Config{
		EmailEnabled: true,
		Timeout:      30 * time.Second,
	}
}
