package models

// FilterSpec is the set of inclusion constraints applied to a candidate list.
// Empty sets and a nil RemoteAvailable place no restriction.
type FilterSpec struct {
	Seniority       []Seniority     `json:"seniority"`
	Stack           []string        `json:"stack"`
	ProcessStatus   []ProcessStatus `json:"processStatus"`
	RemoteAvailable *bool           `json:"remoteAvailable,omitempty"`
	MinMatchScore   float64         `json:"minMatchScore"`
	MaxMatchScore   float64         `json:"maxMatchScore"`
}

type SortKey string

const (
	SortByMatchScore SortKey = "matchScore"
	SortByName       SortKey = "name"
	SortByCreatedAt  SortKey = "createdAt"
	SortBySeniority  SortKey = "seniority"
)
