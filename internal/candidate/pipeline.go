package candidate

import (
	"golang.org/x/text/language"

	"recruiting-workers/internal/models"
)

// ListRequest is one recomputation of the presented list.
type ListRequest struct {
	Records []models.CandidateRecord
	Filters models.FilterSpec
	Query   string
	SortBy  models.SortKey
}

type ListResult struct {
	Candidates []models.Candidate
	Total      int
	Matched    int
}

// Pipeline composes normalization, scoring, filtering and sorting. It holds no
// mutable state; Assemble may be called concurrently.
type Pipeline struct {
	sorter *Sorter
}

func NewPipeline(lang language.Tag) *Pipeline {
	return &Pipeline{sorter: NewSorter(lang)}
}

// Assemble normalizes and scores every record once, keeps those matching the
// filters and query, and orders the survivors by req.SortBy. The input
// records are not modified.
func (p *Pipeline) Assemble(req ListRequest) (*ListResult, error) {
	if err := ValidateFilterSpec(req.Filters); err != nil {
		return nil, err
	}

	kept := make([]models.Candidate, 0, len(req.Records))
	for _, r := range req.Records {
		c := Scored(Normalize(r))
		if Matches(c, req.Filters, req.Query) {
			kept = append(kept, c)
		}
	}

	return &ListResult{
		Candidates: p.sorter.Sort(kept, req.SortBy),
		Total:      len(req.Records),
		Matched:    len(kept),
	}, nil
}
