package candidate

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"recruiting-workers/internal/models"
)

// Sorter orders candidate lists. Names are compared with the collation rules
// of Language.
type Sorter struct {
	Language language.Tag
}

func NewSorter(lang language.Tag) *Sorter {
	return &Sorter{Language: lang}
}

// ParseSortKey reports whether key is one of the known sort keys.
func ParseSortKey(key string) (models.SortKey, bool) {
	switch k := models.SortKey(key); k {
	case models.SortByMatchScore, models.SortByName, models.SortByCreatedAt, models.SortBySeniority:
		return k, true
	default:
		return k, false
	}
}

// Sort returns a new slice ordered by key. The sort is stable, so ties keep
// their input order. An unknown key returns the input order unchanged.
func (s *Sorter) Sort(candidates []models.Candidate, key models.SortKey) []models.Candidate {
	out := make([]models.Candidate, len(candidates))
	copy(out, candidates)

	less := s.less(key)
	if less == nil {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		return less(out[i], out[j])
	})
	return out
}

func (s *Sorter) less(key models.SortKey) func(a, b models.Candidate) bool {
	switch key {
	case models.SortByMatchScore:
		return func(a, b models.Candidate) bool {
			return a.MatchScore > b.MatchScore
		}
	case models.SortByName:
		// Collators are not safe for concurrent use.
		col := collate.New(s.Language)
		return func(a, b models.Candidate) bool {
			return col.CompareString(a.FullName, b.FullName) < 0
		}
	case models.SortByCreatedAt:
		return func(a, b models.Candidate) bool {
			return a.CreatedAt.After(b.CreatedAt)
		}
	case models.SortBySeniority:
		return func(a, b models.Candidate) bool {
			return SeniorityRank(a.Seniority) > SeniorityRank(b.Seniority)
		}
	default:
		return nil
	}
}
