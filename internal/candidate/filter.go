package candidate

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"recruiting-workers/internal/models"
)

var ErrInvalidScoreRange = errors.New("INVALID_SCORE_RANGE")

const (
	MinScore = 0.0
	MaxScore = 100.0
)

// DefaultFilterSpec returns the spec that admits every candidate.
func DefaultFilterSpec() models.FilterSpec {
	return models.FilterSpec{
		Seniority:     []models.Seniority{},
		Stack:         []string{},
		ProcessStatus: []models.ProcessStatus{},
		MinMatchScore: MinScore,
		MaxMatchScore: MaxScore,
	}
}

// ValidateFilterSpec rejects a score range whose bounds are inverted or not
// numbers. Bounds are never swapped.
func ValidateFilterSpec(spec models.FilterSpec) error {
	if math.IsNaN(spec.MinMatchScore) || math.IsNaN(spec.MaxMatchScore) {
		return fmt.Errorf("%w: score bounds must be numbers", ErrInvalidScoreRange)
	}
	if spec.MinMatchScore > spec.MaxMatchScore {
		return fmt.Errorf("%w: minMatchScore %.2f exceeds maxMatchScore %.2f",
			ErrInvalidScoreRange, spec.MinMatchScore, spec.MaxMatchScore)
	}
	return nil
}

// IsActive reports whether spec restricts anything beyond the default range.
func IsActive(spec models.FilterSpec) bool {
	return len(spec.Seniority) > 0 ||
		len(spec.Stack) > 0 ||
		len(spec.ProcessStatus) > 0 ||
		spec.RemoteAvailable != nil ||
		spec.MinMatchScore != MinScore ||
		spec.MaxMatchScore != MaxScore
}

// Matches reports whether a scored candidate satisfies every constraint in
// spec and the free-text query.
func Matches(c models.Candidate, spec models.FilterSpec, query string) bool {
	return matchesQuery(c, query) &&
		matchesSeniority(c, spec.Seniority) &&
		matchesStatus(c, spec.ProcessStatus) &&
		matchesStack(c, spec.Stack) &&
		matchesRemote(c, spec.RemoteAvailable) &&
		c.MatchScore >= spec.MinMatchScore &&
		c.MatchScore <= spec.MaxMatchScore
}

func matchesQuery(c models.Candidate, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(c.FullName), q) ||
		strings.Contains(strings.ToLower(c.ProfessionalTitle), q) {
		return true
	}
	for _, tech := range c.MainStack {
		if strings.Contains(strings.ToLower(tech), q) {
			return true
		}
	}
	return false
}

func matchesSeniority(c models.Candidate, allowed []models.Seniority) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, s := range allowed {
		if c.Seniority == s {
			return true
		}
	}
	return false
}

func matchesStatus(c models.Candidate, allowed []models.ProcessStatus) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, s := range allowed {
		if c.ProcessStatus == s {
			return true
		}
	}
	return false
}

func matchesStack(c models.Candidate, wanted []string) bool {
	if len(wanted) == 0 {
		return true
	}
	for _, w := range wanted {
		for _, tech := range c.MainStack {
			if tech == w {
				return true
			}
		}
	}
	return false
}

func matchesRemote(c models.Candidate, remote *bool) bool {
	return remote == nil || c.RemoteAvailable == *remote
}
