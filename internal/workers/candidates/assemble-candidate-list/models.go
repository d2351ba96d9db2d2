// internal/workers/candidates/assemble-candidate-list/models.go
package assemblecandidatelist

import "recruiting-workers/internal/models"

// Input selects the records to present and how. Inline Records are used as
// given; otherwise the owner's snapshot is loaded.
type Input struct {
	OwnerID string                   `json:"ownerId,omitempty"`
	Records []models.CandidateRecord `json:"records,omitempty"`
	Filters models.FilterSpec        `json:"filters"`
	Query   string                   `json:"query,omitempty"`
	SortBy  models.SortKey           `json:"sortBy,omitempty"`
	Limit   int                      `json:"limit,omitempty"`
}

type Output struct {
	RequestID    string             `json:"requestId"`
	Candidates   []models.Candidate `json:"candidates"`
	TotalCount   int                `json:"totalCount"`
	MatchedCount int                `json:"matchedCount"`
	Truncated    bool               `json:"truncated"`
	SortBy       models.SortKey     `json:"sortBy"`
}
