// internal/workers/candidates/parse-candidate-filters/models.go
package parsecandidatefilters

import "recruiting-workers/internal/models"

// Input holds the filter panel state as submitted by the dashboard. Set
// values may arrive as arrays or comma-separated strings and scores as
// numbers or numeric strings.
type Input struct {
	RawFilters map[string]interface{} `json:"rawFilters"`
	Query      string                 `json:"query,omitempty"`
	SortBy     string                 `json:"sortBy,omitempty"`
}

type Output struct {
	Filters models.FilterSpec `json:"filters"`
	Query   string            `json:"query"`
	SortBy  models.SortKey    `json:"sortBy"`
	// SortKeyKnown is false when SortBy names no known ordering; the list
	// then keeps its input order.
	SortKeyKnown bool `json:"sortKeyKnown"`
	Active       bool `json:"active"`
}
