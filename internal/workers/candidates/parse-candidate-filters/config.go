// internal/workers/candidates/parse-candidate-filters/config.go
package parsecandidatefilters

import (
	"time"

	"recruiting-workers/internal/models"
)

type Config struct {
	DefaultSortBy models.SortKey
	Timeout       time.Duration
}

func LoadConfig() *Config {
	return &Config{
		DefaultSortBy: models.SortByMatchScore,
		Timeout:       5 * time.Second,
	}
}
