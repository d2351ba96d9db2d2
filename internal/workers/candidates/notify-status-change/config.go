// internal/workers/candidates/notify-status-change/config.go
package notifystatuschange

import "time"

type Config struct {
	EmailEnabled   bool
	SMSEnabled     bool
	FromEmail      string
	RecruiterEmail string
	RecruiterPhone string
	Timeout        time.Duration
}

func LoadConfig() *Config {
	return &Config{
		EmailEnabled: true,
		SMSEnabled:   false,
		Timeout:      15 * time.Second,
	}
}
