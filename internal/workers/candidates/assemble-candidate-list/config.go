// internal/workers/candidates/assemble-candidate-list/config.go
package assemblecandidatelist

import (
	"time"

	"golang.org/x/text/language"
)

type Config struct {
	// MaxItems bounds how many records are loaded per owner.
	MaxItems          int
	CollationLanguage language.Tag
	Timeout           time.Duration
}

func LoadConfig() *Config {
	return &Config{
		MaxItems:          500,
		CollationLanguage: language.Spanish,
		Timeout:           15 * time.Second,
	}
}
