// internal/workers/candidates/parse-candidate-filters/parse.go
package parsecandidatefilters

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"recruiting-workers/internal/candidate"
	"recruiting-workers/internal/models"
)

var errInvalidValue = errors.New("invalid filter value")

// stringSet accepts an array of strings or a comma-separated string. Blank
// entries are dropped.
func stringSet(raw interface{}) ([]string, error) {
	var parts []string
	switch v := raw.(type) {
	case nil:
		return []string{}, nil
	case string:
		parts = strings.Split(v, ",")
	case []string:
		parts = v
	case []interface{}:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %v is not a string", errInvalidValue, item)
			}
			parts = append(parts, s)
		}
	default:
		return nil, fmt.Errorf("%w: expected list, got %T", errInvalidValue, raw)
	}

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out, nil
}

func senioritySet(raw interface{}) ([]models.Seniority, error) {
	labels, err := stringSet(raw)
	if err != nil {
		return nil, err
	}
	out := make([]models.Seniority, 0, len(labels))
	for _, label := range labels {
		s, ok := candidate.LookupSeniority(label)
		if !ok {
			return nil, fmt.Errorf("%w: unknown seniority %q", errInvalidValue, label)
		}
		out = appendUnique(out, s)
	}
	return out, nil
}

func statusSet(raw interface{}) ([]models.ProcessStatus, error) {
	labels, err := stringSet(raw)
	if err != nil {
		return nil, err
	}
	out := make([]models.ProcessStatus, 0, len(labels))
	for _, label := range labels {
		s, ok := candidate.LookupStatus(label)
		if !ok {
			return nil, fmt.Errorf("%w: unknown status %q", errInvalidValue, label)
		}
		out = appendUnique(out, s)
	}
	return out, nil
}

// optionalBool maps null, "" and "all" to no constraint.
func optionalBool(raw interface{}) (*bool, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case bool:
		return &v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "", "all":
			return nil, nil
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a boolean", errInvalidValue, v)
		}
		return &b, nil
	default:
		return nil, fmt.Errorf("%w: expected boolean, got %T", errInvalidValue, raw)
	}
}

// score reads a bound in [0, 100]; a missing value yields def.
func score(raw interface{}, def float64) (float64, error) {
	var f float64
	switch v := raw.(type) {
	case nil:
		return def, nil
	case float64:
		f = v
	case int:
		f = float64(v)
	case string:
		if strings.TrimSpace(v) == "" {
			return def, nil
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number", errInvalidValue, v)
		}
		f = parsed
	default:
		return 0, fmt.Errorf("%w: expected number, got %T", errInvalidValue, raw)
	}
	if math.IsNaN(f) || f < candidate.MinScore || f > candidate.MaxScore {
		return 0, fmt.Errorf("%w: score %.2f outside [0, 100]", errInvalidValue, f)
	}
	return f, nil
}

func appendUnique[T comparable](list []T, v T) []T {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}

// firstOf returns the first key present in m.
func firstOf(m map[string]interface{}, keys ...string) interface{} {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return v
		}
	}
	return nil
}
