// internal/workers/checkout/create-checkout-session/config.go
package createcheckoutsession

import "time"

type Config struct {
	Timeout         time.Duration
	DefaultCurrency string
	ReturnURL       string
}

func LoadConfig() *Config {
	return &Config{
		Timeout:         30 * time.Second,
		DefaultCurrency: "EUR",
		ReturnURL:       "https://funnel.example.com/danke",
	}
}
