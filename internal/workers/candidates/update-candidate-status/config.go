// internal/workers/candidates/update-candidate-status/config.go
package updatecandidatestatus

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
