// internal/workers/quiz/validate-quiz-answers/config.go
package validatequizanswers

import "time"

type Config struct {
	Timeout      time.Duration
	RequireEmail bool
}

func LoadConfig() *Config {
	return &Config{
		Timeout:      10 * time.Second,
		RequireEmail: true,
	}
}
