// internal/workers/notification/notify-sales-team/config.go
package notifysalesteam

import "time"

type Config struct {
	Timeout        time.Duration
	SlackEnabled   bool
	SMSEnabled     bool
	SMSPhoneNumber string
	HotLeadGoal    string
}

func LoadConfig() *Config {
	return &Config{
		Timeout:      15 * time.Second,
		SlackEnabled: true,
		SMSEnabled:   false,
		HotLeadGoal:  "freedom",
	}
}
