// internal/workers/quiz/submit-quiz/config.go
package submitquiz

import "time"

type Config struct {
	Timeout       time.Duration
	DefaultSource string
}

func LoadConfig() *Config {
	return &Config{
		Timeout:       10 * time.Second,
		DefaultSource: "quiz",
	}
}
