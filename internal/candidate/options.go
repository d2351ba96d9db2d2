package candidate

import (
	"sort"
	"strings"

	"recruiting-workers/internal/models"
)

// UniqueTechnologies flattens stack lists into a sorted set for the stack
// filter options. Blank entries are skipped.
func UniqueTechnologies(stacks ...[]string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, stack := range stacks {
		for _, tech := range stack {
			if strings.TrimSpace(tech) == "" {
				continue
			}
			if _, ok := seen[tech]; ok {
				continue
			}
			seen[tech] = struct{}{}
			out = append(out, tech)
		}
	}
	sort.Strings(out)
	return out
}

// StackOptions collects the technologies present across candidates.
func StackOptions(candidates []models.Candidate) []string {
	stacks := make([][]string, 0, len(candidates))
	for _, c := range candidates {
		stacks = append(stacks, c.MainStack)
	}
	return UniqueTechnologies(stacks...)
}
